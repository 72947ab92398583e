package gpx

import (
	"errors"
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// ErrNoPoints is returned when a GPX document has no route, track or waypoints
var ErrNoPoints = errors.New("no points found in GPX document")

// Source identifies which GPX element the points were read from
type Source string

const (
	SourceRoute    Source = "rtept"
	SourceTrack    Source = "trkpt"
	SourceWaypoint Source = "wpt"
)

// Reader extracts an ordered point list from GPX documents
type Reader struct{}

// NewReader creates a new GPX reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses a GPX document. Route points are preferred, then track points
// (all tracks and segments concatenated), then waypoints.
func (r *Reader) Read(in io.Reader) ([]geo.Point, Source, error) {
	doc, err := gpx.Parse(in)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse GPX: %w", err)
	}

	if points := routePoints(doc); len(points) > 0 {
		return points, SourceRoute, nil
	}
	if points := trackPoints(doc); len(points) > 0 {
		return points, SourceTrack, nil
	}
	if len(doc.Waypoints) > 0 {
		return convert(doc.Waypoints), SourceWaypoint, nil
	}

	return nil, "", ErrNoPoints
}

func routePoints(doc *gpx.GPX) []geo.Point {
	var points []geo.Point
	for _, route := range doc.Routes {
		points = append(points, convert(route.Points)...)
	}
	return points
}

func trackPoints(doc *gpx.GPX) []geo.Point {
	var points []geo.Point
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			points = append(points, convert(segment.Points)...)
		}
	}
	return points
}

func convert(in []gpx.GPXPoint) []geo.Point {
	points := make([]geo.Point, len(in))
	for i, p := range in {
		points[i] = geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
	}
	return points
}
