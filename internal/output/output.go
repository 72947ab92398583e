// Package output serializes resampled tracks as geometry and label tables.
package output

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/dpup/trackpos/internal/lib/resample"
)

// NewWriter creates the writer for a format
func NewWriter(format Format, opts Options) (Writer, error) {
	switch format {
	case FormatGeoJSON:
		layout := opts.GeoJSONLayout
		if layout == "" {
			layout = GeoJSONGeometry
		}
		if layout != GeoJSONGeometry && layout != GeoJSONFeatureCollection {
			return nil, fmt.Errorf("%w: geojson layout %q", ErrUnknownFormat, layout)
		}
		return &geoJSONWriter{layout: layout}, nil

	case FormatKML:
		return &kmlWriter{}, nil

	case FormatCSV:
		layout := opts.CSVLayout
		if layout == "" {
			layout = CSVLong
		}
		if layout != CSVLong && layout != CSVWide {
			return nil, fmt.Errorf("%w: csv layout %q", ErrUnknownFormat, layout)
		}
		return &csvWriter{layout: layout}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// multiLineString converts segments to orb geometry in (lon, lat) order
func multiLineString(segments []resample.Segment) orb.MultiLineString {
	mls := make(orb.MultiLineString, len(segments))
	for i, s := range segments {
		mls[i] = orb.LineString{
			{s[0].Longitude, s[0].Latitude},
			{s[1].Longitude, s[1].Latitude},
		}
	}
	return mls
}
