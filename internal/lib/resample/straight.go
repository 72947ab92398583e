package resample

import (
	"math"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// straight subdivides every track segment independently
type straight struct {
	opts Options
}

// NewStraight creates the per-segment resampler
func NewStraight(opts Options) Resampler {
	return &straight{opts: normalize(opts)}
}

// Resample emits round(segLen/spacing) evenly stepped samples per segment,
// starting at the segment's first point, then appends the final track point.
// A zero-length segment still contributes its starting point.
func (s *straight) Resample(track geo.Track, spacing float64) (Sequence, error) {
	if err := checkPreconditions(track, spacing); err != nil {
		return nil, err
	}

	seq := make(Sequence, 0, track.Len())
	for i := 0; i < track.Len()-1; i++ {
		start, end := track.At(i), track.At(i+1)
		segLen := math.RoundToEven(track.SegmentLength(i))

		// +1 reserves room for the final track point
		if err := checkBudget(len(seq), math.RoundToEven(segLen/spacing)+1, s.opts.MaxSamples); err != nil {
			return nil, err
		}
		count := segmentCount(segLen, spacing)

		dLat := (end.Latitude - start.Latitude) / float64(count)
		dLon := (end.Longitude - start.Longitude) / float64(count)

		seq = seq.add(start, Original)
		for j := 1; j < count; j++ {
			seq = seq.add(geo.Point{
				Latitude:  start.Latitude + float64(j)*dLat,
				Longitude: start.Longitude + float64(j)*dLon,
			}, Interpolated)
		}
	}

	return seq.add(track.Last(), Original), nil
}
