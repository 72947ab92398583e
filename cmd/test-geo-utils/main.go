package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dpup/trackpos/internal/lib/geo"
	"github.com/dpup/trackpos/internal/lib/labels"
	"github.com/dpup/trackpos/internal/lib/resample"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	geoUtils := geo.NewGeoUtils()

	switch command {
	case "point-distance":
		handlePointDistance(geoUtils)
	case "resample":
		handleResample(geoUtils)
	case "decode-polyline":
		handleDecodePolyline(geoUtils)
	case "encode-polyline":
		handleEncodePolyline(geoUtils)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handlePointDistance(geoUtils geo.GeoUtils) {
	fs := flag.NewFlagSet("point-distance", flag.ExitOnError)
	lat1 := fs.Float64("lat1", 0, "Latitude of first point")
	lng1 := fs.Float64("lng1", 0, "Longitude of first point")
	lat2 := fs.Float64("lat2", 0, "Latitude of second point")
	lng2 := fs.Float64("lng2", 0, "Longitude of second point")

	fs.Parse(os.Args[2:])

	if *lat1 == 0 && *lng1 == 0 && *lat2 == 0 && *lng2 == 0 {
		fmt.Println("Example usage:")
		fmt.Println("  test-geo-utils point-distance --lat1 55.7201 --lng1 12.3701 --lat2 55.7203 --lng2 12.3705")
		os.Exit(1)
	}

	distance, err := geoUtils.DistanceFromCoords(*lat1, *lng1, *lat2, *lng2)
	if err != nil {
		log.Fatalf("Error calculating distance: %v", err)
	}

	fmt.Printf("Distance between points:\n")
	fmt.Printf("  Point 1: (%.6f, %.6f)\n", *lat1, *lng1)
	fmt.Printf("  Point 2: (%.6f, %.6f)\n", *lat2, *lng2)
	fmt.Printf("  Distance: %.2f meters (%.2f km)\n", distance, distance/1000)
}

func handleResample(geoUtils geo.GeoUtils) {
	fs := flag.NewFlagSet("resample", flag.ExitOnError)
	coords := fs.String("coords", "", "Semicolon separated lat,lng pairs")
	polylineStr := fs.String("polyline", "", "Encoded polyline string")
	spacing := fs.Float64("spacing", 2, "Target spacing in meters")
	variant := fs.String("variant", string(resample.VariantQueue), "straight, queue or interval")
	sortInput := fs.Bool("sort", false, "Sort points by latitude, then longitude")
	prefix := fs.String("prefix", "", "Print labels for this prefix")
	verbose := fs.Bool("verbose", false, "Show all samples")

	fs.Parse(os.Args[2:])

	if *coords == "" && *polylineStr == "" {
		fmt.Println("Example usage:")
		fmt.Println("  test-geo-utils resample --coords \"0,0;0,0.0001\" --spacing 2 --verbose")
		fmt.Println("  test-geo-utils resample --polyline \"_p~iF~ps|U_ulLnnqC_mqNvxq`@\" --spacing 10000 --variant straight")
		os.Exit(1)
	}

	var points []geo.Point
	var err error
	if *coords != "" {
		points, err = parseCoordinatePairs(*coords)
	} else {
		points, err = geoUtils.DecodePolyline(*polylineStr)
	}
	if err != nil {
		log.Fatalf("Error reading points: %v", err)
	}

	track, err := geo.NewTrack(points)
	if err != nil {
		log.Fatalf("Error building track: %v", err)
	}

	opts := resample.DefaultOptions()
	opts.SortInput = *sortInput
	resampler, err := resample.New(resample.Variant(*variant), opts)
	if err != nil {
		log.Fatalf("Error creating resampler: %v", err)
	}

	seq, err := resampler.Resample(track, *spacing)
	if err != nil {
		log.Fatalf("Error resampling: %v", err)
	}

	summary := resample.Stats(track, seq, *spacing)
	fmt.Printf("Resampled track (%s):\n", *variant)
	fmt.Printf("  Input points: %d\n", summary.TrackPoints)
	fmt.Printf("  Track length: %.2f meters\n", summary.TrackLength)
	fmt.Printf("  Samples: %d (%d interpolated)\n", summary.Samples, summary.Interpolated)
	fmt.Printf("  Segments: %d\n", len(resample.PairSegments(seq)))
	fmt.Printf("  Mean spacing: %.3f meters\n", summary.MeanSpacing)

	if *verbose {
		fmt.Printf("  Samples:\n")
		for _, s := range seq {
			label := ""
			if *prefix != "" {
				label = " " + labels.Label(*prefix, s.Index)
			}
			fmt.Printf("    %d: (%.7f, %.7f) %s%s\n", s.Index, s.Point.Latitude, s.Point.Longitude, s.Origin, label)
		}
	}
}

func handleDecodePolyline(geoUtils geo.GeoUtils) {
	fs := flag.NewFlagSet("decode-polyline", flag.ExitOnError)
	polylineStr := fs.String("polyline", "", "Encoded polyline string to decode")
	verbose := fs.Bool("verbose", false, "Show all decoded points")

	fs.Parse(os.Args[2:])

	if *polylineStr == "" {
		fmt.Println("Example usage:")
		fmt.Println("  test-geo-utils decode-polyline --polyline \"_p~iF~ps|U_ulLnnqC_mqNvxq`@\"")
		fmt.Println("  test-geo-utils decode-polyline --polyline \"encoded_string\" --verbose")
		os.Exit(1)
	}

	points, err := geoUtils.DecodePolyline(*polylineStr)
	if err != nil {
		log.Fatalf("Error decoding polyline: %v", err)
	}

	fmt.Printf("Polyline decoded successfully:\n")
	fmt.Printf("  Input: %s\n", *polylineStr)
	fmt.Printf("  Points: %d\n", len(points))
	fmt.Printf("  Length: %.2f meters\n", geoUtils.PathLength(points))

	if len(points) > 0 {
		fmt.Printf("  Start: (%.6f, %.6f)\n", points[0].Latitude, points[0].Longitude)
		if len(points) > 1 {
			fmt.Printf("  End: (%.6f, %.6f)\n", points[len(points)-1].Latitude, points[len(points)-1].Longitude)
		}
	}

	if *verbose && len(points) > 0 {
		fmt.Printf("  All points:\n")
		for i, point := range points {
			fmt.Printf("    %d: (%.6f, %.6f)\n", i+1, point.Latitude, point.Longitude)
		}
	}
}

func handleEncodePolyline(geoUtils geo.GeoUtils) {
	fs := flag.NewFlagSet("encode-polyline", flag.ExitOnError)
	coords := fs.String("coords", "", "Semicolon separated lat,lng pairs")

	fs.Parse(os.Args[2:])

	if *coords == "" {
		fmt.Println("Example usage:")
		fmt.Println("  test-geo-utils encode-polyline --coords \"38.5,-120.2;40.7,-120.95;43.252,-126.453\"")
		os.Exit(1)
	}

	points, err := parseCoordinatePairs(*coords)
	if err != nil {
		log.Fatalf("Error parsing coordinates: %v", err)
	}

	fmt.Println(geoUtils.EncodePolyline(points))
}

func printUsage() {
	fmt.Printf(`test-geo-utils - Track geometry testing tool

USAGE:
    test-geo-utils <command> [options]

COMMANDS:
    point-distance      Calculate great-circle distance between two points
    resample            Resample a short track and print the samples
    decode-polyline     Decode Google polyline string to coordinates
    encode-polyline     Encode coordinates as a Google polyline string
    help               Show this help message

EXAMPLES:
    # Distance between two survey fixes
    test-geo-utils point-distance --lat1 55.7201 --lng1 12.3701 --lat2 55.7203 --lng2 12.3705

    # 2 m image positions along an 11 m equator segment
    test-geo-utils resample --coords "0,0;0,0.0001" --spacing 2 --prefix LcmsResult_ImageInt_ --verbose

    # Decode polyline to see coordinates
    test-geo-utils decode-polyline --polyline "encoded_string" --verbose
`)
}

// Helper function to parse coordinate pairs from string
func parseCoordinatePairs(coordStr string) ([]geo.Point, error) {
	if coordStr == "" {
		return nil, fmt.Errorf("empty coordinate string")
	}

	pairs := strings.Split(coordStr, ";")
	points := make([]geo.Point, 0, len(pairs))

	for _, pair := range pairs {
		coords := strings.Split(strings.TrimSpace(pair), ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid coordinate pair: %s", pair)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", coords[0])
		}

		lng, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", coords[1])
		}

		points = append(points, geo.Point{Latitude: lat, Longitude: lng})
	}

	return points, nil
}
