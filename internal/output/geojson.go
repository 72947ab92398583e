package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"
)

type geoJSONWriter struct {
	layout GeoJSONLayout
}

func (g *geoJSONWriter) Format() Format    { return FormatGeoJSON }
func (g *geoJSONWriter) Extension() string { return ".json" }

// Write emits the paired segments as a MultiLineString, either bare or wrapped
// in a single-feature collection carrying the track name and counts
func (g *geoJSONWriter) Write(w io.Writer, doc Document) error {
	mls := multiLineString(doc.Segments)

	var payload interface{}
	switch g.layout {
	case GeoJSONFeatureCollection:
		feature := geojson.NewFeature(mls)
		if doc.Name != "" {
			feature.Properties["name"] = doc.Name
		}
		feature.Properties["samples"] = len(doc.Sequence)
		feature.Properties["segments"] = len(doc.Segments)

		fc := geojson.NewFeatureCollection()
		fc.Append(feature)
		payload = fc
	default:
		payload = geojson.NewGeometry(mls)
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return nil
}
