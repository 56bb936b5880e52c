package textflow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathBuilders(t *testing.T) {
	p := NewPath()
	require.True(t, p.IsEmpty())

	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()

	assert.False(t, p.IsEmpty())
	assert.True(t, p.IsClosed())

	b := p.Bounds()
	assert.Equal(t, Pt(0, 0), b.Min)
	assert.Equal(t, Pt(10, 10), b.Max)
}

func TestPathLength(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	assert.InDelta(t, 100, p.Length(), 1e-9)

	p.LineTo(100, 50)
	assert.InDelta(t, 150, p.Length(), 1e-9)
}

func TestPathPointAtLength(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(100, 100)

	pt := p.PointAtLength(50)
	assert.InDelta(t, 50, pt.X, 1e-9)
	assert.InDelta(t, 0, pt.Y, 1e-9)

	pt = p.PointAtLength(150)
	assert.InDelta(t, 100, pt.X, 1e-9)
	assert.InDelta(t, 50, pt.Y, 1e-9)

	// Clamped at both ends.
	assert.Equal(t, p.PointAtLength(0), p.PointAtLength(-10))
	assert.Equal(t, p.PointAtLength(200), p.PointAtLength(500))
}

func TestPathAngleAtLength(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(100, 100)

	assert.InDelta(t, 0, p.AngleAtLength(50), 1e-9)
	assert.InDelta(t, math.Pi/2, p.AngleAtLength(150), 1e-9)
}

func TestPathQuadraticLength(t *testing.T) {
	// A flat quadratic degenerates to its chord.
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadraticTo(50, 0, 100, 0)
	assert.InDelta(t, 100, p.Length(), 1e-6)

	// A bent one is strictly longer than the chord.
	q := NewPath()
	q.MoveTo(0, 0)
	q.QuadraticTo(50, 80, 100, 0)
	assert.Greater(t, q.Length(), 100.0)
}

func TestPathReversed(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)

	r := p.Reversed()
	require.InDelta(t, 100, r.Length(), 1e-9)

	start := r.PointAtLength(0)
	assert.InDelta(t, 100, start.X, 1e-9)
	end := r.PointAtLength(100)
	assert.InDelta(t, 0, end.X, 1e-9)
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)

	moved := p.Transform(Translate(5, 5))
	pt := moved.PointAtLength(0)
	assert.Equal(t, Pt(5, 5), pt)

	// The original is untouched.
	assert.Equal(t, Pt(0, 0), p.PointAtLength(0))
}

func TestPathRectangle(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 20)
	assert.True(t, p.IsClosed())
	assert.InDelta(t, 60, p.Length(), 1e-9)
}

func TestDecorationStroke(t *testing.T) {
	s := decorationStroke(Solid, 2)
	assert.Equal(t, 2.0, s.Width)
	assert.False(t, s.IsDashed())

	s = decorationStroke(Dotted, 2)
	assert.Equal(t, CapRound, s.Cap)
	require.True(t, s.IsDashed())
	assert.Equal(t, []float64{0, 4}, s.Dash.Lengths)

	s = decorationStroke(Dashed, 2)
	require.True(t, s.IsDashed())
	assert.Equal(t, 12.0, s.Dash.PatternLength())

	scaled := s.Dash.Scale(2)
	assert.Equal(t, 24.0, scaled.PatternLength())
}
