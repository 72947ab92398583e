package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/trackpos/internal/lib/geo"
)

func mustTrack(t *testing.T, points ...geo.Point) geo.Track {
	t.Helper()
	track, err := geo.NewTrack(points)
	require.NoError(t, err)
	return track
}

// allVariants returns one resampler per variant with default options
func allVariants() map[Variant]Resampler {
	return map[Variant]Resampler{
		VariantStraight: NewStraight(DefaultOptions()),
		VariantQueue:    NewQueue(DefaultOptions()),
		VariantInterval: NewInterval(DefaultOptions()),
	}
}

func TestNew(t *testing.T) {
	for _, v := range []Variant{VariantStraight, VariantQueue, VariantInterval} {
		r, err := New(v, Options{})
		require.NoError(t, err)
		assert.NotNil(t, r)
	}

	_, err := New("spline", Options{})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestResample_Preconditions(t *testing.T) {
	for name, r := range allVariants() {
		t.Run(string(name), func(t *testing.T) {
			_, err := r.Resample(mustTrack(t, geo.Point{Latitude: 1, Longitude: 1}), 2)
			assert.ErrorIs(t, err, ErrTrackTooShort)

			_, err = r.Resample(mustTrack(t), 2)
			assert.ErrorIs(t, err, ErrTrackTooShort)

			track := mustTrack(t, geo.Point{}, geo.Point{Latitude: 0, Longitude: 0.001})
			for _, spacing := range []float64{0, -2, math.NaN(), math.Inf(1)} {
				_, err = r.Resample(track, spacing)
				assert.ErrorIs(t, err, ErrInvalidSpacing, "spacing %v", spacing)
			}
		})
	}
}

func TestResample_LongEquatorSegment(t *testing.T) {
	start := geo.Point{Latitude: 0, Longitude: 0}
	end := geo.Point{Latitude: 0, Longitude: 10}
	track := mustTrack(t, start, end)
	distance := geo.Haversine(start, end)

	for name, r := range allVariants() {
		t.Run(string(name), func(t *testing.T) {
			seq, err := r.Resample(track, 2)
			require.NoError(t, err)

			assert.Equal(t, start, seq[0].Point)
			assert.Equal(t, end, seq[len(seq)-1].Point)
			assert.InDelta(t, distance/2, float64(seq.Len()), 2, "Sample count should be ~distance/spacing")

			for i, s := range seq {
				require.Equal(t, i, s.Index)
			}
		})
	}
}

func TestResample_ZeroLengthSegment(t *testing.T) {
	dup := geo.Point{Latitude: 55.72, Longitude: 12.37}
	neighbor := geo.Point{Latitude: 55.72, Longitude: 12.3701}
	track := mustTrack(t, dup, dup, neighbor)

	for name, r := range allVariants() {
		t.Run(string(name), func(t *testing.T) {
			seq, err := r.Resample(track, 2)
			require.NoError(t, err)

			assert.Equal(t, dup, seq[0].Point)
			assert.Equal(t, neighbor, seq[len(seq)-1].Point, "Neighbor of the duplicate should be kept")
			for _, s := range seq {
				assert.False(t, math.IsNaN(s.Point.Latitude) || math.IsNaN(s.Point.Longitude))
			}
		})
	}
}

func TestResample_AllIdenticalPoints(t *testing.T) {
	p := geo.Point{Latitude: 38.1327, Longitude: -120.4606}
	track := mustTrack(t, p, p, p)

	for name, r := range allVariants() {
		t.Run(string(name), func(t *testing.T) {
			seq, err := r.Resample(track, 2)
			require.NoError(t, err)
			require.GreaterOrEqual(t, seq.Len(), 2)
			assert.Equal(t, p, seq[0].Point)
			assert.Equal(t, p, seq[len(seq)-1].Point)
		})
	}
}

func TestResample_MaxSamples(t *testing.T) {
	track := mustTrack(t, geo.Point{}, geo.Point{Latitude: 0, Longitude: 1})
	opts := DefaultOptions()
	opts.MaxSamples = 100

	for _, r := range []Resampler{NewStraight(opts), NewQueue(opts), NewInterval(opts)} {
		_, err := r.Resample(track, 2)
		assert.ErrorIs(t, err, ErrTooManySamples)
	}

	// Disabled limit
	opts.MaxSamples = 0
	seq, err := NewStraight(opts).Resample(track, 2)
	require.NoError(t, err)
	assert.Greater(t, seq.Len(), 100)
}

func TestResample_HardSampleLimit(t *testing.T) {
	track := mustTrack(t, geo.Point{}, geo.Point{Latitude: 0, Longitude: 10})
	opts := DefaultOptions()
	opts.MaxSamples = 0

	for name, r := range map[Variant]Resampler{
		VariantStraight: NewStraight(opts),
		VariantQueue:    NewQueue(opts),
		VariantInterval: NewInterval(opts),
	} {
		t.Run(string(name), func(t *testing.T) {
			seq, err := r.Resample(track, 1e-15)
			assert.ErrorIs(t, err, ErrTooManySamples)
			assert.Nil(t, seq)
		})
	}
}

func TestPairSegments(t *testing.T) {
	seq := Sequence{}
	for i := 0; i < 5; i++ {
		seq = seq.add(geo.Point{Latitude: float64(i), Longitude: float64(i)}, Original)
	}

	segments := PairSegments(seq)
	require.Len(t, segments, 2)
	assert.Equal(t, Segment{seq[0].Point, seq[1].Point}, segments[0])
	assert.Equal(t, Segment{seq[2].Point, seq[3].Point}, segments[1])

	assert.Len(t, PairSegments(seq[:4]), 2)
	assert.Len(t, PairSegments(seq[:1]), 0)
	assert.Len(t, PairSegments(nil), 0)
}

func TestSequence_Points(t *testing.T) {
	seq := Sequence{}.add(geo.Point{Latitude: 1, Longitude: 2}, Original).add(geo.Point{Latitude: 3, Longitude: 4}, Interpolated)
	assert.Equal(t, []geo.Point{{Latitude: 1, Longitude: 2}, {Latitude: 3, Longitude: 4}}, seq.Points())
	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, "original", seq[0].Origin.String())
	assert.Equal(t, "interpolated", seq[1].Origin.String())
}

func TestStats(t *testing.T) {
	track := mustTrack(t, geo.Point{}, geo.Point{Latitude: 0, Longitude: 0.001})

	seq, err := NewStraight(DefaultOptions()).Resample(track, 2)
	require.NoError(t, err)

	summary := Stats(track, seq, 2)
	assert.Equal(t, 2, summary.TrackPoints)
	assert.InDelta(t, 111.19, summary.TrackLength, 0.01)
	assert.Equal(t, seq.Len(), summary.Samples)
	assert.Equal(t, seq.Len()-2, summary.Interpolated)
	assert.InDelta(t, 2, summary.MeanSpacing, 0.1)
	assert.Equal(t, 2.0, summary.TargetSpacing)
}
