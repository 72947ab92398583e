// Package resample turns an irregularly spaced track into samples at an
// approximately constant great-circle spacing.
package resample

import (
	"fmt"
	"math"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// New creates the Resampler for the named variant
func New(variant Variant, opts Options) (Resampler, error) {
	switch variant {
	case VariantStraight:
		return NewStraight(opts), nil
	case VariantQueue:
		return NewQueue(opts), nil
	case VariantInterval:
		return NewInterval(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
}

// Points returns the sample positions in order
func (s Sequence) Points() []geo.Point {
	points := make([]geo.Point, len(s))
	for i, sample := range s {
		points[i] = sample.Point
	}
	return points
}

// Len returns the number of samples
func (s Sequence) Len() int {
	return len(s)
}

func (s Sequence) add(p geo.Point, origin Origin) Sequence {
	return append(s, Sample{Index: len(s), Point: p, Origin: origin})
}

func (s Sequence) last() geo.Point {
	return s[len(s)-1].Point
}

// PairSegments groups samples [0,1], [2,3], ... into disconnected segments.
// A trailing sample without a partner is dropped.
func PairSegments(seq Sequence) []Segment {
	segments := make([]Segment, 0, len(seq)/2)
	for i := 0; i+1 < len(seq); i += 2 {
		segments = append(segments, Segment{seq[i].Point, seq[i+1].Point})
	}
	return segments
}

// Summary describes a resampling result for logging
type Summary struct {
	TrackPoints   int     `json:"track_points"`
	TrackLength   float64 `json:"track_length_meters"`
	Samples       int     `json:"samples"`
	Interpolated  int     `json:"interpolated"`
	MeanSpacing   float64 `json:"mean_spacing_meters"`
	TargetSpacing float64 `json:"target_spacing_meters"`
}

// Stats summarizes a track and the sequence produced from it
func Stats(track geo.Track, seq Sequence, spacing float64) Summary {
	summary := Summary{
		TrackPoints:   track.Len(),
		TrackLength:   track.Length(),
		Samples:       len(seq),
		TargetSpacing: spacing,
	}

	sampled := 0.0
	for i, s := range seq {
		if s.Origin == Interpolated {
			summary.Interpolated++
		}
		if i > 0 {
			sampled += geo.Haversine(seq[i-1].Point, s.Point)
		}
	}
	if len(seq) > 1 {
		summary.MeanSpacing = sampled / float64(len(seq)-1)
	}
	return summary
}

func checkPreconditions(track geo.Track, spacing float64) error {
	if track.Len() < 2 {
		return fmt.Errorf("%w: got %d", ErrTrackTooShort, track.Len())
	}
	if spacing <= 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpacing, spacing)
	}
	return nil
}

// segmentCount is round(length/spacing) with half-to-even rounding, clamped to 1
func segmentCount(length, spacing float64) int {
	count := int(math.RoundToEven(length / spacing))
	if count < 1 {
		return 1
	}
	return count
}

// hardSampleLimit bounds every sequence, even when MaxSamples is disabled, so
// sample counts always fit in an int
const hardSampleLimit = math.MaxInt32

// checkBudget fails when adding n samples to a sequence of length have would
// exceed limit, or hardSampleLimit when limit is 0. The float comparison
// avoids overflow for absurd spacings.
func checkBudget(have int, n float64, limit int) error {
	total := float64(have) + n
	if math.IsNaN(total) || total > hardSampleLimit {
		return fmt.Errorf("%w: %v samples", ErrTooManySamples, total)
	}
	if limit > 0 && total > float64(limit) {
		return fmt.Errorf("%w: limit %d", ErrTooManySamples, limit)
	}
	return nil
}

func normalize(opts Options) Options {
	def := DefaultOptions()
	if opts.IterationFactor <= 0 {
		opts.IterationFactor = def.IterationFactor
	}
	if opts.MaxSamples < 0 {
		opts.MaxSamples = 0
	}
	if opts.Remainder == "" {
		opts.Remainder = def.Remainder
	}
	return opts
}
