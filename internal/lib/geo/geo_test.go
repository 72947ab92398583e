package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine_Properties(t *testing.T) {
	angelscamp := Point{Latitude: 38.0675, Longitude: -120.5436}
	murphys := Point{Latitude: 38.1391, Longitude: -120.4561}

	assert.Equal(t, 0.0, Haversine(angelscamp, angelscamp), "Distance to self should be zero")
	assert.Equal(t, Haversine(angelscamp, murphys), Haversine(murphys, angelscamp), "Distance should be symmetric")

	// One degree of longitude at the equator
	oneDegree := Haversine(Point{0, 0}, Point{0, 1})
	assert.InEpsilon(t, 111195.0, oneDegree, 0.01)

	// Antipodal points are half the circumference apart
	antipodal := Haversine(Point{0, 0}, Point{0, 180})
	assert.InDelta(t, math.Pi*EarthRadius, antipodal, 1)
}

func TestHaversine_NearAntipodal(t *testing.T) {
	for lat := -89.0; lat <= 89.0; lat += 0.73 {
		for lon := -179.9; lon < 0; lon += 1.37 {
			p1 := Point{Latitude: lat, Longitude: lon}
			p2 := Point{Latitude: -lat, Longitude: lon + 180}

			d := Haversine(p1, p2)
			require.False(t, math.IsNaN(d), "NaN distance for %v -> %v", p1, p2)
			assert.InDelta(t, math.Pi*EarthRadius, d, 1, "%v -> %v", p1, p2)
		}
	}
}

func TestGeoUtils_PointToPoint(t *testing.T) {
	angelscamp := Point{Latitude: 38.0675, Longitude: -120.5436}
	murphys := Point{Latitude: 38.1391, Longitude: -120.4561}

	geoUtils := NewGeoUtils()

	distance, err := geoUtils.PointToPoint(angelscamp, murphys)
	require.NoError(t, err)

	// Expected distance ~11.0 km between Angels Camp and Murphys
	assert.InDelta(t, 11046, distance, 100, "Distance should be approximately 11.0km")

	invalidPoint := Point{Latitude: 200, Longitude: -300}
	_, err = geoUtils.PointToPoint(angelscamp, invalidPoint)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = geoUtils.PointToPoint(angelscamp, Point{Latitude: math.NaN(), Longitude: 0})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestGeoUtils_DistanceFromCoords(t *testing.T) {
	geoUtils := NewGeoUtils()

	distance, err := geoUtils.DistanceFromCoords(55.7200, 12.3700, 55.7210, 12.3700)
	require.NoError(t, err)
	assert.InDelta(t, 111, distance, 1, "0.001 degree of latitude is ~111m")
}

func TestGeoUtils_PathLength(t *testing.T) {
	geoUtils := NewGeoUtils()

	points := []Point{{0, 0}, {0, 1}, {0, 2}}
	assert.InDelta(t, 2*Haversine(Point{0, 0}, Point{0, 1}), geoUtils.PathLength(points), 1e-6)
	assert.Equal(t, 0.0, geoUtils.PathLength(points[:1]))
	assert.Equal(t, 0.0, geoUtils.PathLength(nil))
}

func TestGeoUtils_DecodePolyline(t *testing.T) {
	geoUtils := NewGeoUtils()

	// Reference polyline from the Google encoding documentation
	points, err := geoUtils.DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Latitude, 1e-5)
	assert.InDelta(t, -120.2, points[0].Longitude, 1e-5)
	assert.InDelta(t, 43.252, points[2].Latitude, 1e-5)
	assert.InDelta(t, -126.453, points[2].Longitude, 1e-5)

	_, err = geoUtils.DecodePolyline("")
	assert.ErrorIs(t, err, ErrEmptyPolyline)
}

func TestGeoUtils_EncodePolyline(t *testing.T) {
	geoUtils := NewGeoUtils()

	points := []Point{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", geoUtils.EncodePolyline(points))
}

func TestInterpolate(t *testing.T) {
	start := Point{Latitude: 10, Longitude: 20}
	end := Point{Latitude: 20, Longitude: 40}

	assert.Equal(t, start, Interpolate(start, end, 0))
	assert.Equal(t, end, Interpolate(start, end, 1))
	assert.Equal(t, Point{Latitude: 15, Longitude: 30}, Interpolate(start, end, 0.5))
}

func TestNewPoint(t *testing.T) {
	p, err := NewPoint(55.72, 12.37)
	require.NoError(t, err)
	assert.Equal(t, Point{Latitude: 55.72, Longitude: 12.37}, p)

	_, err = NewPoint(91, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = NewPoint(0, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestNewTrack(t *testing.T) {
	input := []Point{{0, 0}, {0, 1}, {1, 1}}

	track, err := NewTrack(input)
	require.NoError(t, err)
	assert.Equal(t, 3, track.Len())
	assert.Equal(t, Point{0, 0}, track.First())
	assert.Equal(t, Point{1, 1}, track.Last())
	assert.Equal(t, Point{0, 1}, track.At(1))

	// Mutating the caller's slice or the returned copy must not affect the track
	input[0] = Point{5, 5}
	pts := track.Points()
	pts[1] = Point{6, 6}
	assert.Equal(t, Point{0, 0}, track.At(0))
	assert.Equal(t, Point{0, 1}, track.At(1))

	assert.InDelta(t, Haversine(Point{0, 0}, Point{0, 1}), track.SegmentLength(0), 1e-9)
	assert.InDelta(t, track.SegmentLength(0)+track.SegmentLength(1), track.Length(), 1e-9)

	_, err = NewTrack([]Point{{0, 0}, {math.NaN(), 1}})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	empty, err := NewTrack(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, Point{}, empty.First())
	assert.Equal(t, Point{}, empty.Last())
}
