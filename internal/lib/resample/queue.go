package resample

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// queue consumes a work queue of (point, distance from previous point) entries.
// Entries closer than the spacing are merged forward, which absorbs duplicate
// and jittery GPS fixes.
type queue struct {
	opts Options
}

// queueEntry is a track point and the rounded distance to it from its predecessor
type queueEntry struct {
	point    geo.Point
	distance float64
}

// NewQueue creates the queue-consuming resampler
func NewQueue(opts Options) Resampler {
	return &queue{opts: normalize(opts)}
}

// Resample walks the queue once. Every step consumes the head entry:
//   - shorter than spacing (and not last): its distance is merged into the next entry
//   - exactly spacing, or the final entry: the point is emitted
//   - longer than spacing: samples are interpolated from the last emitted
//     sample up to and including the point
//
// The work budget is IterationFactor * (points + length/spacing).
func (q *queue) Resample(track geo.Track, spacing float64) (Sequence, error) {
	if err := checkPreconditions(track, spacing); err != nil {
		return nil, err
	}

	points := track.Points()
	if q.opts.SortInput {
		slices.SortStableFunc(points, comparePoints)
	}

	entries, total := buildQueue(points)

	expected := math.Ceil(total / spacing)
	if err := checkBudget(0, expected, q.opts.MaxSamples); err != nil {
		return nil, err
	}
	budget := q.opts.IterationFactor * (len(points) + int(expected))

	seq := make(Sequence, 0, int(expected)+1)
	seq = seq.add(points[0], Original)

	iterations := 0
	carry := 0.0
	for head := 0; head < len(entries); head++ {
		entry := entries[head]
		distance := entry.distance + carry
		carry = 0
		final := head == len(entries)-1

		switch {
		case distance < spacing && !final:
			carry = distance
			iterations++

		case distance <= spacing:
			seq = seq.add(entry.point, Original)
			iterations++

		default:
			if err := checkBudget(len(seq), math.RoundToEven(distance/spacing), q.opts.MaxSamples); err != nil {
				return nil, err
			}
			count := segmentCount(distance, spacing)

			anchor := seq.last()
			dLat := (entry.point.Latitude - anchor.Latitude) / float64(count)
			dLon := (entry.point.Longitude - anchor.Longitude) / float64(count)
			for j := 1; j < count; j++ {
				seq = seq.add(geo.Point{
					Latitude:  anchor.Latitude + float64(j)*dLat,
					Longitude: anchor.Longitude + float64(j)*dLon,
				}, Interpolated)
			}
			seq = seq.add(entry.point, Original)
			iterations += count

			if q.opts.Remainder == RemainderCarry && !final {
				carry = distance - float64(count)*spacing
			}
		}

		if iterations > budget {
			return nil, fmt.Errorf("%w: %d iterations for %d points", ErrNonConvergent, iterations, len(points))
		}
	}

	return seq, nil
}

// buildQueue pairs every point after the first with its rounded distance from
// the previous point, and returns the unrounded total length.
func buildQueue(points []geo.Point) ([]queueEntry, float64) {
	entries := make([]queueEntry, 0, len(points)-1)
	total := 0.0
	for i := 1; i < len(points); i++ {
		d := geo.Haversine(points[i-1], points[i])
		total += d
		entries = append(entries, queueEntry{
			point:    points[i],
			distance: math.RoundToEven(d),
		})
	}
	return entries, total
}

// comparePoints orders by latitude, then longitude
func comparePoints(a, b geo.Point) int {
	if c := cmp.Compare(a.Latitude, b.Latitude); c != 0 {
		return c
	}
	return cmp.Compare(a.Longitude, b.Longitude)
}
