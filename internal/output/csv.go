package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/dpup/trackpos/internal/lib/labels"
)

type csvWriter struct {
	layout CSVLayout
}

func (c *csvWriter) Format() Format    { return FormatCSV }
func (c *csvWriter) Extension() string { return ".csv" }

func (c *csvWriter) Write(w io.Writer, doc Document) error {
	if c.layout == CSVWide {
		return writeWide(w, doc)
	}

	rows := doc.Rows
	if rows == nil {
		rows = []labels.Row{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	return nil
}

// writeWide writes longitude, latitude and one label column per prefix for
// every sample. The column count depends on the prefix list, so it does not
// fit a fixed struct.
func writeWide(w io.Writer, doc Document) error {
	header := []string{"longitude", "latitude"}
	for i := range doc.Prefixes {
		header = append(header, "label_"+strconv.Itoa(i+1))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}

	for _, sample := range doc.Sequence {
		record := []string{
			strconv.FormatFloat(sample.Point.Longitude, 'f', -1, 64),
			strconv.FormatFloat(sample.Point.Latitude, 'f', -1, 64),
		}
		for _, prefix := range doc.Prefixes {
			record = append(record, labels.Label(prefix, sample.Index))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to encode CSV: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	return nil
}
