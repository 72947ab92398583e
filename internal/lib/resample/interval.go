package resample

import (
	"math"

	"github.com/paulmach/orb"
	orbresample "github.com/paulmach/orb/resample"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// interval distributes samples evenly over the whole path length using orb's
// line string resampler, with the package haversine as the distance metric
type interval struct {
	opts Options
}

// NewInterval creates the whole-path resampler
func NewInterval(opts Options) Resampler {
	return &interval{opts: normalize(opts)}
}

// Resample places round(length/spacing)+1 samples along the track, at least two.
// Consecutive duplicate points are collapsed first so no zero-length segment
// reaches the interpolation.
func (r *interval) Resample(track geo.Track, spacing float64) (Sequence, error) {
	if err := checkPreconditions(track, spacing); err != nil {
		return nil, err
	}

	ls := toLineString(track)
	if len(ls) < 2 {
		// every point was identical
		seq := make(Sequence, 0, 2)
		return seq.add(track.First(), Original).add(track.Last(), Original), nil
	}

	total := track.Length()
	if err := checkBudget(0, math.RoundToEven(total/spacing)+1, r.opts.MaxSamples); err != nil {
		return nil, err
	}
	totalPoints := int(math.RoundToEven(total/spacing)) + 1
	if totalPoints < 2 {
		totalPoints = 2
	}

	resampled := orbresample.Resample(ls, orbDistance, totalPoints)

	seq := make(Sequence, 0, len(resampled))
	for i, p := range resampled {
		origin := Interpolated
		if i == 0 || i == len(resampled)-1 {
			origin = Original
		}
		seq = seq.add(geo.Point{Latitude: p.Lat(), Longitude: p.Lon()}, origin)
	}
	return seq, nil
}

// toLineString converts to (lon, lat) orb points, dropping consecutive duplicates
func toLineString(track geo.Track) orb.LineString {
	ls := make(orb.LineString, 0, track.Len())
	for i := 0; i < track.Len(); i++ {
		p := track.At(i)
		op := orb.Point{p.Longitude, p.Latitude}
		if len(ls) > 0 && ls[len(ls)-1].Equal(op) {
			continue
		}
		ls = append(ls, op)
	}
	return ls
}

func orbDistance(a, b orb.Point) float64 {
	return geo.Haversine(
		geo.Point{Latitude: a.Lat(), Longitude: a.Lon()},
		geo.Point{Latitude: b.Lat(), Longitude: b.Lon()},
	)
}
