package rsp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/trackpos/internal/lib/geo"
)

// Shaped like LCMS RSP position records: three leading decimals, then lat/lon
const survey = `[Header]
Version=4.2
[Positions]
POS 1.000 0.250 17.5 55.720100 12.370100 31.2 N
POS 2.000 0.250 17.5 55.720200 12.370300 31.4 N
EVT 3.000 0.000 0.0 0.000000 0.000000
POS 4.000 0.250 17.5 55.720300 12.370500 31.5 N
POS 5.000 0.250 17.5 48.100000 11.500000 40.0 N
POS short 1.0 2.0
`

func TestParser_Defaults(t *testing.T) {
	points, err := NewParser().Parse(strings.NewReader(survey))
	require.NoError(t, err)

	// every full record parses, including the (0, 0) event and the far-off fix
	assert.Equal(t, []geo.Point{
		{Latitude: 55.7201, Longitude: 12.3701},
		{Latitude: 55.7202, Longitude: 12.3703},
		{Latitude: 0, Longitude: 0},
		{Latitude: 55.7203, Longitude: 12.3705},
		{Latitude: 48.1, Longitude: 11.5},
	}, points)
}

func TestParser_Region(t *testing.T) {
	region := NewBoundingBox(55.73, 12.38, 55.71, 12.36)
	points, err := NewParser(WithRegion(region)).Parse(strings.NewReader(survey))
	require.NoError(t, err)

	require.Len(t, points, 3)
	for _, p := range points {
		assert.True(t, region.Contains(p))
	}
}

func TestParser_LineFilter(t *testing.T) {
	points, err := NewParser(WithLineFilter(ContainsAll("55.72", "12.37"))).Parse(strings.NewReader(survey))
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestParser_SkipFields(t *testing.T) {
	input := "55.5 12.5\n56.5 13.5 extra\n"
	points, err := NewParser(WithSkipFields(0)).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{{Latitude: 55.5, Longitude: 12.5}, {Latitude: 56.5, Longitude: 13.5}}, points)
}

func TestParser_NegativeSkipFields(t *testing.T) {
	input := "55.5 12.5\n"
	var points []geo.Point
	var err error
	require.NotPanics(t, func() {
		points, err = NewParser(WithSkipFields(-1)).Parse(strings.NewReader(input))
	})
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{{Latitude: 55.5, Longitude: 12.5}}, points)
}

func TestParser_InvalidCoordinatesSkipped(t *testing.T) {
	input := "1.0 2.0 3.0 123.456 12.0\n1.0 2.0 3.0 -33.5 -70.25\n"
	points, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{{Latitude: -33.5, Longitude: -70.25}}, points)
}

func TestParser_NoPoints(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader("nothing here\n"))
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = NewParser(WithRegion(NewBoundingBox(1, 1, 2, 2))).Parse(strings.NewReader(survey))
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestBoundingBox(t *testing.T) {
	box := NewBoundingBox(10, 20, 0, 0)
	assert.True(t, box.Contains(geo.Point{Latitude: 5, Longitude: 5}))
	assert.True(t, box.Contains(geo.Point{Latitude: 10, Longitude: 20}), "Edges are inclusive")
	assert.False(t, box.Contains(geo.Point{Latitude: 5, Longitude: 25}))
	assert.True(t, World.Contains(geo.Point{Latitude: -90, Longitude: 180}))
}
