package geo

import "errors"

// EarthRadius is the sphere radius used for great-circle distances, in meters
const EarthRadius = 6371000

var (
	// ErrInvalidCoordinate is returned for non-finite or out-of-range coordinates
	ErrInvalidCoordinate = errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")

	// ErrEmptyPolyline is returned when decoding an empty polyline string
	ErrEmptyPolyline = errors.New("encoded polyline string is empty")
)

// Point represents a geographic coordinate
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Track is an ordered, read-only sequence of points in traversal order.
// Construct it with NewTrack.
type Track struct {
	points []Point
}

// GeoUtils interface defines geographic calculation utilities
type GeoUtils interface {
	// Calculate great-circle distance between two points in meters
	PointToPoint(p1, p2 Point) (float64, error)

	// Calculate distance between coordinate pairs (convenience method)
	DistanceFromCoords(lat1, lon1, lat2, lon2 float64) (float64, error)

	// Total great-circle length of a point sequence in meters
	PathLength(points []Point) float64

	// Decode Google polyline string to point sequence
	DecodePolyline(encoded string) ([]Point, error)

	// Encode point sequence as a Google polyline string
	EncodePolyline(points []Point) string
}

// NewGeoUtils is implemented in geo.go
