package resample

import (
	"errors"

	"github.com/dpup/trackpos/internal/lib/geo"
)

var (
	// ErrTrackTooShort is returned when a track has fewer than two points
	ErrTrackTooShort = errors.New("track must have at least 2 points")

	// ErrInvalidSpacing is returned for a non-positive or non-finite spacing
	ErrInvalidSpacing = errors.New("spacing must be a positive number of meters")

	// ErrNonConvergent is returned when the queue variant exceeds its iteration budget
	ErrNonConvergent = errors.New("non-convergent resampling: iteration budget exceeded")

	// ErrTooManySamples is returned when the output would exceed Options.MaxSamples
	ErrTooManySamples = errors.New("resampling would exceed the maximum sample count")

	// ErrUnknownVariant is returned by New for an unrecognized variant name
	ErrUnknownVariant = errors.New("unknown resampling variant")
)

// Origin records where a sample's position came from
type Origin int

const (
	Original     Origin = iota // copied from a track point
	Interpolated               // placed between two track points
)

func (o Origin) String() string {
	switch o {
	case Original:
		return "original"
	case Interpolated:
		return "interpolated"
	}
	return "unknown"
}

// Sample is one resampled position
type Sample struct {
	Index  int       `json:"index"`
	Point  geo.Point `json:"point"`
	Origin Origin    `json:"origin"`
}

// Sequence is the ordered output of a resampling pass
type Sequence []Sample

// Segment is a disconnected 2-point line
type Segment [2]geo.Point

// Variant names a resampling algorithm
type Variant string

const (
	VariantStraight Variant = "straight" // per-segment subdivision
	VariantQueue    Variant = "queue"    // queue-consuming with noise absorption
	VariantInterval Variant = "interval" // whole-path even distribution
)

// RemainderPolicy controls what happens to the rounding remainder of a subdivided
// segment in the queue variant
type RemainderPolicy string

const (
	RemainderDrop  RemainderPolicy = "drop"  // each segment is rounded independently
	RemainderCarry RemainderPolicy = "carry" // remainder is added to the next segment's distance
)

// Options tunes the resamplers. A zero IterationFactor or Remainder falls back
// to DefaultOptions.
type Options struct {
	// SortInput orders points by latitude then longitude before the queue variant runs
	SortInput bool

	// IterationFactor scales the queue variant's iteration budget
	IterationFactor int

	// MaxSamples bounds the output length; 0 disables the check
	MaxSamples int

	Remainder RemainderPolicy
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		SortInput:       false,
		IterationFactor: 4,
		MaxSamples:      5_000_000,
		Remainder:       RemainderDrop,
	}
}

// Resampler converts a track into approximately evenly spaced samples
type Resampler interface {
	// Resample emits samples roughly spacing meters apart. The first and last
	// samples are the first and last points of the (possibly sorted) track.
	Resample(track geo.Track, spacing float64) (Sequence, error)
}

// New is implemented in resample.go
