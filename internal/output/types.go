package output

import (
	"errors"
	"io"

	"github.com/dpup/trackpos/internal/lib/labels"
	"github.com/dpup/trackpos/internal/lib/resample"
)

// ErrUnknownFormat is returned for an unsupported output format or layout
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output file kind
type Format string

const (
	FormatGeoJSON Format = "geojson"
	FormatKML     Format = "kml"
	FormatCSV     Format = "csv"
)

// GeoJSONLayout selects the top-level GeoJSON object
type GeoJSONLayout string

const (
	GeoJSONGeometry          GeoJSONLayout = "geometry"           // bare MultiLineString
	GeoJSONFeatureCollection GeoJSONLayout = "feature_collection" // one feature holding the MultiLineString
)

// CSVLayout selects the label table shape
type CSVLayout string

const (
	CSVLong CSVLayout = "long" // one row per sample and prefix
	CSVWide CSVLayout = "wide" // one row per sample, one column per prefix
)

// Document is everything a writer may serialize for one resampled track
type Document struct {
	Name     string
	Sequence resample.Sequence
	Segments []resample.Segment
	Rows     []labels.Row
	Prefixes []string
}

// Options configures writers
type Options struct {
	GeoJSONLayout GeoJSONLayout
	CSVLayout     CSVLayout
}

// Writer serializes a Document in one format
type Writer interface {
	Format() Format

	// Extension is the file extension including the dot
	Extension() string

	Write(w io.Writer, doc Document) error
}
