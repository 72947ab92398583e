package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/dpup/trackpos/internal/config"
	"github.com/dpup/trackpos/internal/services"
)

func main() {
	log.SetFlags(0)
	app := &cli.App{
		Name:  "trackpos",
		Usage: "Resample a GPX/RSP track at a fixed spacing and write image positions as GeoJSON, KML and CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Track file to process",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output name; .json, .kml and .csv are appended per format",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Input format: gpx, rsp or polyline",
			},
			&cli.Float64Flag{
				Name:    "spacing",
				Aliases: []string{"s"},
				Usage:   "Target distance between image positions in meters",
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "Resampling algorithm: straight, queue or interval",
			},
			&cli.BoolFlag{
				Name:  "sort",
				Usage: "Sort input points by latitude, then longitude (queue variant)",
			},
			&cli.StringSliceFlag{
				Name:  "outputs",
				Usage: "Output formats: geojson, kml, csv",
			},
			&cli.StringFlag{
				Name:  "csv-layout",
				Usage: "CSV shape: long (row per label) or wide (row per position)",
			},
			&cli.StringSliceFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "Image label prefix; repeat for several",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Development logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	converter := services.NewConverter(cfg, logger.Sugar())
	result, err := converter.Convert(context.Background(), services.Request{
		InputPath:  c.String("input"),
		OutputBase: c.String("output"),
	})
	if err != nil {
		logger.Sugar().Errorw("Conversion failed", "error", err)
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("%d image positions (%d label rows) from %d track points\n",
		result.Summary.Samples, result.Summary.Samples*len(cfg.Output.LabelPrefixes), result.Summary.TrackPoints)
	for _, path := range result.Files {
		fmt.Printf("  wrote %s\n", path)
	}
	return nil
}

// loadConfig reads the optional config file and applies flag overrides
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("format") {
		cfg.Input.Format = c.String("format")
	}
	if c.IsSet("spacing") {
		cfg.Resample.Spacing = c.Float64("spacing")
	}
	if c.IsSet("variant") {
		cfg.Resample.Variant = c.String("variant")
	}
	if c.IsSet("sort") {
		cfg.Resample.SortInput = c.Bool("sort")
	}
	if c.IsSet("outputs") {
		cfg.Output.Formats = c.StringSlice("outputs")
	}
	if c.IsSet("csv-layout") {
		cfg.Output.CSVLayout = c.String("csv-layout")
	}
	if c.IsSet("prefix") {
		cfg.Output.LabelPrefixes = c.StringSlice("prefix")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
