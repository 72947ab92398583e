package output

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml"
)

type kmlWriter struct{}

func (k *kmlWriter) Format() Format    { return FormatKML }
func (k *kmlWriter) Extension() string { return ".kml" }

// Write emits one Placemark whose MultiGeometry holds a LineString per segment
func (k *kmlWriter) Write(w io.Writer, doc Document) error {
	lines := make([]kml.Element, len(doc.Segments))
	for i, s := range doc.Segments {
		lines[i] = kml.LineString(
			kml.Coordinates(
				kml.Coordinate{Lon: s[0].Longitude, Lat: s[0].Latitude},
				kml.Coordinate{Lon: s[1].Longitude, Lat: s[1].Latitude},
			),
		)
	}

	name := doc.Name
	if name == "" {
		name = "track"
	}

	root := kml.KML(
		kml.Document(
			kml.Name(name),
			kml.Placemark(
				kml.Name(name),
				kml.MultiGeometry(lines...),
			),
		),
	)
	if err := root.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to encode KML: %w", err)
	}
	return nil
}
