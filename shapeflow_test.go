package textflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapeRect(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rectangle(x, y, w, h)
	return p
}

func TestIntervalOps(t *testing.T) {
	a := []interval{{0, 10}, {20, 30}}
	b := []interval{{5, 25}}

	got := intersect(a, b)
	require.Len(t, got, 2)
	assert.Equal(t, interval{5, 10}, got[0])
	assert.Equal(t, interval{20, 25}, got[1])

	cut := subtract(a, []interval{{2, 4}})
	require.Len(t, cut, 3)
	assert.Equal(t, interval{0, 2}, cut[0])
	assert.Equal(t, interval{4, 10}, cut[1])
}

func TestInsideIntervalsRect(t *testing.T) {
	flat := flattenShapes([]*Path{shapeRect(10, 0, 40, 100)})
	require.Len(t, flat, 1)
	iv := insideIntervals(flat[0], 50)
	require.Len(t, iv, 1)
	assert.InDelta(t, 10, iv[0].lo, 1e-6)
	assert.InDelta(t, 50, iv[0].hi, 1e-6)
}

func TestLayoutShapesInside(t *testing.T) {
	props := Properties{
		ShapesInside: []*Path{shapeRect(0, 0, 35, 300)},
	}

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "aa aa", Properties: props})

	require.GreaterOrEqual(t, len(res.Lines), 2, "the narrow shape wraps the text")

	first := res.Characters[0].FinalPosition
	second := res.Characters[3].FinalPosition
	assert.Greater(t, second.Y, first.Y)
	assert.GreaterOrEqual(t, first.X, 0.0)
	assert.False(t, res.Characters[0].Hidden)
	assert.False(t, res.Characters[4].Hidden)
}

func TestShapeFlowLineBoxes(t *testing.T) {
	props := Properties{
		ShapesInside: []*Path{shapeRect(0, 0, 35, 300)},
	}

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "aa aa", Properties: props})

	require.GreaterOrEqual(t, len(res.Lines), 2)
	line := res.Lines[0]
	assert.Greater(t, line.ExpectedLineTop, 0.0)
	assert.Greater(t, line.ActualLineTop, 0.0)
	assert.Greater(t, line.ActualLineBottom, 0.0)
	assert.InDelta(t, line.BaselineTop.Y+line.ActualLineTop+line.ActualLineBottom,
		line.BaselineBottom.Y, 1e-9, "the bottom anchor sits below the baseline")
}

func TestLayoutShapesSubtract(t *testing.T) {
	props := Properties{
		ShapesInside:   []*Path{shapeRect(0, 0, 100, 300)},
		ShapesSubtract: []*Path{shapeRect(0, 0, 100, 300)},
	}

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "aa", Properties: props})

	// Everything subtracted: the text cannot be placed.
	for _, cr := range res.Characters {
		assert.True(t, cr.Hidden)
	}
}
