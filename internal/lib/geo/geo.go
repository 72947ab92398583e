package geo

import (
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"
)

// geoUtils implements the GeoUtils interface
type geoUtils struct{}

// NewGeoUtils creates a new GeoUtils implementation
func NewGeoUtils() GeoUtils {
	return &geoUtils{}
}

// Haversine returns the great-circle distance between two points in meters.
// The result is not rounded and inputs are not validated; see NewTrack.
func Haversine(p1, p2 Point) float64 {
	if p1 == p2 {
		return 0
	}

	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	dlat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dlon := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	// rounding can push a just past 1 for near-antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// PointToPoint calculates great-circle distance between two points using Haversine formula
func (g *geoUtils) PointToPoint(p1, p2 Point) (float64, error) {
	if !isValidCoordinate(p1) || !isValidCoordinate(p2) {
		return 0, ErrInvalidCoordinate
	}
	return Haversine(p1, p2), nil
}

// DistanceFromCoords calculates distance between two coordinate pairs
// Convenience method for raw latitude/longitude values
func (g *geoUtils) DistanceFromCoords(lat1, lon1, lat2, lon2 float64) (float64, error) {
	return g.PointToPoint(Point{Latitude: lat1, Longitude: lon1}, Point{Latitude: lat2, Longitude: lon2})
}

// PathLength sums the great-circle length of consecutive segments
func (g *geoUtils) PathLength(points []Point) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Haversine(points[i], points[i+1])
	}
	return total
}

// DecodePolyline decodes Google polyline string to point sequence
func (g *geoUtils) DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, ErrEmptyPolyline
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{
			Latitude:  coord[0],
			Longitude: coord[1],
		}
		if !isValidCoordinate(points[i]) {
			return nil, fmt.Errorf("decoded polyline point %d: %w", i, ErrInvalidCoordinate)
		}
	}

	return points, nil
}

// EncodePolyline encodes points as a Google polyline string (5 digit precision)
func (g *geoUtils) EncodePolyline(points []Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(polyline.EncodeCoords(coords))
}

// Interpolate returns the point at fraction t along the straight lat/lon line
// from start to end. t=0 returns start, t=1 returns end.
func Interpolate(start, end Point, t float64) Point {
	return Point{
		Latitude:  start.Latitude + t*(end.Latitude-start.Latitude),
		Longitude: start.Longitude + t*(end.Longitude-start.Longitude),
	}
}

// Coordinate Conversion Utilities

// NewPoint creates a Point from latitude and longitude values with validation
func NewPoint(latitude, longitude float64) (Point, error) {
	point := Point{Latitude: latitude, Longitude: longitude}
	if !isValidCoordinate(point) {
		return Point{}, ErrInvalidCoordinate
	}
	return point, nil
}

// NewTrack validates every point and returns an immutable Track.
// Length is not checked here; consumers decide how many points they need.
func NewTrack(points []Point) (Track, error) {
	owned := make([]Point, len(points))
	for i, p := range points {
		if !isValidCoordinate(p) {
			return Track{}, fmt.Errorf("track point %d (%v, %v): %w", i, p.Latitude, p.Longitude, ErrInvalidCoordinate)
		}
		owned[i] = p
	}
	return Track{points: owned}, nil
}

// Len returns the number of points in the track
func (t Track) Len() int {
	return len(t.points)
}

// At returns the i-th point
func (t Track) At(i int) Point {
	return t.points[i]
}

// First returns the first point, or the zero Point for an empty track
func (t Track) First() Point {
	if len(t.points) == 0 {
		return Point{}
	}
	return t.points[0]
}

// Last returns the last point, or the zero Point for an empty track
func (t Track) Last() Point {
	if len(t.points) == 0 {
		return Point{}
	}
	return t.points[len(t.points)-1]
}

// Points returns a copy of the track points
func (t Track) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// SegmentLength returns the great-circle distance between point i and i+1
func (t Track) SegmentLength(i int) float64 {
	return Haversine(t.points[i], t.points[i+1])
}

// Length returns the total great-circle length of the track in meters
func (t Track) Length() float64 {
	total := 0.0
	for i := 0; i < len(t.points)-1; i++ {
		total += t.SegmentLength(i)
	}
	return total
}

// isValidCoordinate validates latitude and longitude values
func isValidCoordinate(point Point) bool {
	if math.IsNaN(point.Latitude) || math.IsNaN(point.Longitude) {
		return false
	}
	return point.Latitude >= -90 && point.Latitude <= 90 &&
		point.Longitude >= -180 && point.Longitude <= 180
}
