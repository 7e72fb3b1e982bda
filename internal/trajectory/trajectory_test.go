package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMisconceptionControlPoints(t *testing.T) {
	c := ForMisconception(0.5)
	assert.Equal(t, Point{0, 0}, c.P0)
	assert.InDelta(t, 0.3, c.P1[0], 1e-12)
	assert.InDelta(t, 0.9, c.P1[1], 1e-12)
	assert.InDelta(t, 0.7, c.P2[0], 1e-12)
	assert.InDelta(t, 0.4, c.P2[1], 1e-12)
	assert.Equal(t, Point{1, 1}, c.P3)
}

func TestSampleEndpoints(t *testing.T) {
	pts := ForMisconception(0.2).Sample(20)
	require.Len(t, pts, 21)
	assert.Equal(t, Point{0, 0}, pts[0])
	assert.InDelta(t, 1, pts[20][0], 1e-9)
	assert.InDelta(t, 1, pts[20][1], 1e-9)
}

func TestSampleMinimum(t *testing.T) {
	assert.Len(t, ForMisconception(0).Sample(0), 2)
}

func TestEvaluateMidpoint(t *testing.T) {
	c := Curve{P0: Point{0, 0}, P1: Point{0, 1}, P2: Point{1, 1}, P3: Point{1, 0}}
	mid := c.Evaluate(0.5)
	assert.InDelta(t, 0.5, mid[0], 1e-12)
	assert.InDelta(t, 0.75, mid[1], 1e-12)
}

func TestCheckClosureAlwaysHolds(t *testing.T) {
	curves := []Curve{
		ForMisconception(0),
		ForMisconception(1),
		{P0: Point{-3, 2}, P1: Point{10, -4}, P2: Point{0.25, 7}, P3: Point{5.5, -1.25}},
	}
	for _, c := range curves {
		assert.True(t, c.CheckClosure(1e-9), "curve %+v", c)
	}
}
