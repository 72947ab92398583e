// Package labels assigns image identifiers to resampled positions.
package labels

import (
	"errors"
	"fmt"

	"github.com/dpup/trackpos/internal/lib/resample"
)

// IndexWidth is the zero-padded width of the sample index in a label
const IndexWidth = 6

// ErrNoPrefixes is returned when no label prefixes are configured
var ErrNoPrefixes = errors.New("at least one label prefix is required")

// DefaultPrefixes are the LCMS image stems produced for every sample
var DefaultPrefixes = []string{
	"LcmsResult_ImageInt_",
	"LcmsResult_ImageRng_",
	"LcmsResult_OverlayInt_",
	"LcmsResult_OverlayRng_",
}

// Row assigns one label to one sample position
type Row struct {
	Index     int     `csv:"index"`
	Label     string  `csv:"label"`
	Longitude float64 `csv:"longitude"`
	Latitude  float64 `csv:"latitude"`
}

// Label joins a prefix with the zero-padded sample index
func Label(prefix string, index int) string {
	return fmt.Sprintf("%s%0*d", prefix, IndexWidth, index)
}

// Generate returns len(seq)*len(prefixes) rows, sample-major, prefixes in order
func Generate(seq resample.Sequence, prefixes []string) ([]Row, error) {
	if len(prefixes) == 0 {
		return nil, ErrNoPrefixes
	}

	rows := make([]Row, 0, len(seq)*len(prefixes))
	for _, sample := range seq {
		for _, prefix := range prefixes {
			rows = append(rows, Row{
				Index:     sample.Index,
				Label:     Label(prefix, sample.Index),
				Longitude: sample.Point.Longitude,
				Latitude:  sample.Point.Latitude,
			})
		}
	}
	return rows, nil
}
