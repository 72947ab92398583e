package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/dpup/trackpos/internal/clients/gpx"
	"github.com/dpup/trackpos/internal/clients/rsp"
	"github.com/dpup/trackpos/internal/config"
	"github.com/dpup/trackpos/internal/lib/geo"
	"github.com/dpup/trackpos/internal/lib/labels"
	"github.com/dpup/trackpos/internal/lib/resample"
	"github.com/dpup/trackpos/internal/output"
)

// ErrMissingPath is returned when a request lacks an input or output path
var ErrMissingPath = errors.New("input path and output base are required")

// Request names one conversion
type Request struct {
	InputPath string

	// OutputBase is the output path without extension; each format appends its own
	OutputBase string
}

// Result describes a finished conversion
type Result struct {
	Source  string           `json:"source"`
	Files   []string         `json:"files"`
	Summary resample.Summary `json:"summary"`
}

// Converter reads a track file, resamples it and writes the configured outputs
type Converter struct {
	config   *config.Config
	geoUtils geo.GeoUtils
	logger   *zap.SugaredLogger
}

// NewConverter creates a converter. The config must already be validated.
func NewConverter(cfg *config.Config, logger *zap.SugaredLogger) *Converter {
	return &Converter{
		config:   cfg,
		geoUtils: geo.NewGeoUtils(),
		logger:   logger,
	}
}

// Convert runs read, resample, label and write in order. Cancellation is
// checked between stages.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	if req.InputPath == "" || req.OutputBase == "" {
		return nil, ErrMissingPath
	}

	points, source, err := c.readPoints(req.InputPath)
	if err != nil {
		return nil, err
	}
	c.logger.Debugw("Read track points", "input", req.InputPath, "source", source, "points", len(points))

	track, err := geo.NewTrack(points)
	if err != nil {
		return nil, fmt.Errorf("invalid track in %s: %w", req.InputPath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resampler, err := resample.New(resample.Variant(c.config.Resample.Variant), c.config.Resample.ResampleOptions())
	if err != nil {
		return nil, err
	}
	seq, err := resampler.Resample(track, c.config.Resample.Spacing)
	if err != nil {
		return nil, fmt.Errorf("failed to resample %s: %w", req.InputPath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := labels.Generate(seq, c.config.Output.LabelPrefixes)
	if err != nil {
		return nil, err
	}

	doc := output.Document{
		Name:     strings.TrimSuffix(filepath.Base(req.InputPath), filepath.Ext(req.InputPath)),
		Sequence: seq,
		Segments: resample.PairSegments(seq),
		Rows:     rows,
		Prefixes: c.config.Output.LabelPrefixes,
	}

	result := &Result{
		Source:  source,
		Summary: resample.Stats(track, seq, c.config.Resample.Spacing),
	}
	for _, format := range c.config.Output.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		writer, err := output.NewWriter(output.Format(format), c.config.Output.WriterOptions())
		if err != nil {
			return nil, err
		}
		path := req.OutputBase + writer.Extension()
		if err := writeFile(path, writer, doc); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	c.logger.Infow("Track converted",
		"input", req.InputPath,
		"variant", c.config.Resample.Variant,
		"track_points", result.Summary.TrackPoints,
		"track_length_m", result.Summary.TrackLength,
		"samples", result.Summary.Samples,
		"segments", len(doc.Segments),
		"label_rows", len(rows),
		"mean_spacing_m", result.Summary.MeanSpacing,
		"files", result.Files)

	return result, nil
}

func (c *Converter) readPoints(path string) ([]geo.Point, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	format := config.InputFormat(c.config.Input.Format)
	switch format {
	case config.InputGPX:
		points, source, err := gpx.NewReader().Read(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return points, string(source), nil

	case config.InputRSP:
		points, err := c.rspParser().Parse(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return points, string(format), nil

	case config.InputPolyline:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		points, err := c.geoUtils.DecodePolyline(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return points, string(format), nil
	}

	return nil, "", fmt.Errorf("unsupported input format %q", format)
}

func (c *Converter) rspParser() *rsp.Parser {
	cfg := c.config.Input.RSP
	opts := []rsp.Option{rsp.WithSkipFields(cfg.SkipFields)}
	if len(cfg.RequireSubstrings) > 0 {
		opts = append(opts, rsp.WithLineFilter(rsp.ContainsAll(cfg.RequireSubstrings...)))
	}
	if cfg.Region != nil {
		opts = append(opts, rsp.WithRegion(cfg.Region.ToRegion()))
	}
	return rsp.NewParser(opts...)
}

func writeFile(path string, writer output.Writer, doc output.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := writer.Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
