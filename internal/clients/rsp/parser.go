package rsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// DefaultSkipFields is the number of leading decimal fields before latitude on
// an LCMS RSP position line
const DefaultSkipFields = 3

// ErrNoPoints is returned when no line yields a coordinate inside the region
var ErrNoPoints = errors.New("no coordinates found in RSP input")

var decimalPattern = regexp.MustCompile(`-?\d+\.\d+`)

// LineFilter decides whether a raw line is a position candidate
type LineFilter func(line string) bool

// Region decides whether an extracted coordinate belongs to the survey area
type Region interface {
	Contains(p geo.Point) bool
}

// BoundingBox is a Region backed by an orb.Bound
type BoundingBox struct {
	bound orb.Bound
}

// NewBoundingBox creates a Region spanning the two corners (any order)
func NewBoundingBox(lat1, lon1, lat2, lon2 float64) BoundingBox {
	b := orb.Bound{Min: orb.Point{lon1, lat1}, Max: orb.Point{lon1, lat1}}
	return BoundingBox{bound: b.Extend(orb.Point{lon2, lat2})}
}

// Contains reports whether p is inside the box, edges included
func (b BoundingBox) Contains(p geo.Point) bool {
	return b.bound.Contains(orb.Point{p.Longitude, p.Latitude})
}

// World accepts every coordinate
var World Region = NewBoundingBox(-90, -180, 90, 180)

// ContainsAll returns a LineFilter requiring every substring to appear in the line
func ContainsAll(substrings ...string) LineFilter {
	return func(line string) bool {
		for _, s := range substrings {
			if !strings.Contains(line, s) {
				return false
			}
		}
		return true
	}
}

// Parser extracts coordinates from RSP survey text, one candidate per line
type Parser struct {
	skip   int
	filter LineFilter
	region Region
}

// Option configures a Parser
type Option func(*Parser)

// WithSkipFields sets how many decimal fields precede latitude. Negative
// values are treated as 0.
func WithSkipFields(n int) Option {
	return func(p *Parser) { p.skip = max(n, 0) }
}

// WithLineFilter sets the raw-line predicate
func WithLineFilter(f LineFilter) Option {
	return func(p *Parser) { p.filter = f }
}

// WithRegion sets the coordinate predicate
func WithRegion(r Region) Option {
	return func(p *Parser) { p.region = r }
}

// NewParser creates a parser; by default every line is a candidate and the
// region is the whole globe
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		skip:   DefaultSkipFields,
		region: World,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads lines in order. A line contributes a point when it passes the
// line filter, holds at least skip+2 decimal numbers, and fields skip and
// skip+1 (latitude, longitude) form a valid coordinate inside the region.
func (p *Parser) Parse(in io.Reader) ([]geo.Point, error) {
	var points []geo.Point

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if p.filter != nil && !p.filter(line) {
			continue
		}

		point, ok := p.parseLine(line)
		if !ok || !p.region.Contains(point) {
			continue
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read RSP input: %w", err)
	}

	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

func (p *Parser) parseLine(line string) (geo.Point, bool) {
	fields := decimalPattern.FindAllString(line, p.skip+2)
	if len(fields) < p.skip+2 {
		return geo.Point{}, false
	}

	lat, err := strconv.ParseFloat(fields[p.skip], 64)
	if err != nil {
		return geo.Point{}, false
	}
	lon, err := strconv.ParseFloat(fields[p.skip+1], 64)
	if err != nil {
		return geo.Point{}, false
	}

	point, err := geo.NewPoint(lat, lon)
	if err != nil {
		return geo.Point{}, false
	}
	return point, true
}
