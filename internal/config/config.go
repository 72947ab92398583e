package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dpup/trackpos/internal/clients/rsp"
	"github.com/dpup/trackpos/internal/lib/labels"
	"github.com/dpup/trackpos/internal/lib/resample"
	"github.com/dpup/trackpos/internal/output"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// InputFormat names a supported track source
type InputFormat string

const (
	InputGPX      InputFormat = "gpx"
	InputRSP      InputFormat = "rsp"
	InputPolyline InputFormat = "polyline"
)

// Config represents the complete converter configuration
type Config struct {
	Resample ResampleConfig `yaml:"resample"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
}

// ResampleConfig holds resampling settings
type ResampleConfig struct {
	Spacing         float64 `yaml:"spacing"`
	Variant         string  `yaml:"variant"`
	SortInput       bool    `yaml:"sort_input"`
	IterationFactor int     `yaml:"iteration_factor"`
	MaxSamples      int     `yaml:"max_samples"`
	Remainder       string  `yaml:"remainder"`
}

// InputConfig holds track reader settings
type InputConfig struct {
	Format string    `yaml:"format"`
	RSP    RSPConfig `yaml:"rsp"`
}

// RSPConfig holds RSP line extraction settings
type RSPConfig struct {
	SkipFields        int              `yaml:"skip_fields"`
	RequireSubstrings []string         `yaml:"require_substrings"`
	Region            *BoundingBoxYAML `yaml:"region"`
}

// BoundingBoxYAML represents a survey region in YAML config
type BoundingBoxYAML struct {
	MinLatitude  float64 `yaml:"min_latitude"`
	MinLongitude float64 `yaml:"min_longitude"`
	MaxLatitude  float64 `yaml:"max_latitude"`
	MaxLongitude float64 `yaml:"max_longitude"`
}

// OutputConfig holds output writer settings
type OutputConfig struct {
	Formats       []string `yaml:"formats"`
	GeoJSONLayout string   `yaml:"geojson_layout"`
	CSVLayout     string   `yaml:"csv_layout"`
	LabelPrefixes []string `yaml:"label_prefixes"`
}

// ToRegion converts the YAML box to an RSP region
func (b BoundingBoxYAML) ToRegion() rsp.Region {
	return rsp.NewBoundingBox(b.MinLatitude, b.MinLongitude, b.MaxLatitude, b.MaxLongitude)
}

// ResampleOptions converts to resampler options
func (r ResampleConfig) ResampleOptions() resample.Options {
	return resample.Options{
		SortInput:       r.SortInput,
		IterationFactor: r.IterationFactor,
		MaxSamples:      r.MaxSamples,
		Remainder:       resample.RemainderPolicy(r.Remainder),
	}
}

// WriterOptions converts to output writer options
func (o OutputConfig) WriterOptions() output.Options {
	return output.Options{
		GeoJSONLayout: output.GeoJSONLayout(o.GeoJSONLayout),
		CSVLayout:     output.CSVLayout(o.CSVLayout),
	}
}

// defaults is the flattened default configuration, loaded before any file
func defaults() map[string]interface{} {
	opts := resample.DefaultOptions()
	return map[string]interface{}{
		"resample.spacing":          2.0,
		"resample.variant":          string(resample.VariantQueue),
		"resample.sort_input":       opts.SortInput,
		"resample.iteration_factor": opts.IterationFactor,
		"resample.max_samples":      opts.MaxSamples,
		"resample.remainder":        string(opts.Remainder),

		"input.format":          string(InputGPX),
		"input.rsp.skip_fields": rsp.DefaultSkipFields,

		"output.formats":        []string{string(output.FormatGeoJSON), string(output.FormatCSV)},
		"output.geojson_layout": string(output.GeoJSONGeometry),
		"output.csv_layout":     string(output.CSVLong),
		"output.label_prefixes": append([]string(nil), labels.DefaultPrefixes...),
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	cfg, err := Load("")
	if err != nil {
		// defaults are static; failing here is a programming error
		panic(err)
	}
	return cfg
}

// Load reads defaults, then the YAML file at path when path is non-empty
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks every value a run depends on
func (c *Config) Validate() error {
	if c.Resample.Spacing <= 0 || math.IsNaN(c.Resample.Spacing) || math.IsInf(c.Resample.Spacing, 0) {
		return fmt.Errorf("%w: resample.spacing must be positive, got %v", ErrInvalidConfig, c.Resample.Spacing)
	}

	switch resample.Variant(c.Resample.Variant) {
	case resample.VariantStraight, resample.VariantQueue, resample.VariantInterval:
	default:
		return fmt.Errorf("%w: unknown resample.variant %q", ErrInvalidConfig, c.Resample.Variant)
	}

	switch resample.RemainderPolicy(c.Resample.Remainder) {
	case resample.RemainderDrop, resample.RemainderCarry:
	default:
		return fmt.Errorf("%w: unknown resample.remainder %q", ErrInvalidConfig, c.Resample.Remainder)
	}

	if c.Resample.MaxSamples < 0 {
		return fmt.Errorf("%w: resample.max_samples must not be negative", ErrInvalidConfig)
	}

	switch InputFormat(c.Input.Format) {
	case InputGPX, InputRSP, InputPolyline:
	default:
		return fmt.Errorf("%w: unknown input.format %q", ErrInvalidConfig, c.Input.Format)
	}

	if c.Input.RSP.SkipFields < 0 {
		return fmt.Errorf("%w: input.rsp.skip_fields must not be negative", ErrInvalidConfig)
	}

	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("%w: output.formats is empty", ErrInvalidConfig)
	}
	for _, f := range c.Output.Formats {
		if _, err := output.NewWriter(output.Format(f), c.Output.WriterOptions()); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if len(c.Output.LabelPrefixes) == 0 {
		return fmt.Errorf("%w: output.label_prefixes is empty", ErrInvalidConfig)
	}

	return nil
}
