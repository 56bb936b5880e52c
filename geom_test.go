package textflow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	assert.Equal(t, Pt(5, 6), p.Add(Pt(2, 2)))
	assert.Equal(t, Pt(1, 2), p.Sub(Pt(2, 2)))
	assert.Equal(t, Pt(6, 8), p.Mul(2))
	assert.InDelta(t, 5, p.Length(), 1e-12)
	assert.InDelta(t, 11, p.Dot(Pt(1, 2)), 1e-12)

	n := p.Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-12)

	r := Pt(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, 1, r.Y, 1e-12)

	m := Pt(0, 0).Lerp(Pt(10, 20), 0.5)
	assert.Equal(t, Pt(5, 10), m)
}

func TestRectUnion(t *testing.T) {
	var empty Rect
	require.True(t, empty.IsEmpty())

	a := Rect{Min: Pt(0, 0), Max: Pt(10, 10)}
	assert.Equal(t, a, empty.Union(a), "union with empty is identity")
	assert.Equal(t, a, a.Union(empty))

	b := Rect{Min: Pt(5, 5), Max: Pt(20, 15)}
	u := a.Union(b)
	assert.Equal(t, Pt(0, 0), u.Min)
	assert.Equal(t, Pt(20, 15), u.Max)

	moved := a.Translate(Pt(1, 2))
	assert.Equal(t, Pt(1, 2), moved.Min)
	assert.Equal(t, Pt(11, 12), moved.Max)
	assert.True(t, a.Contains(Pt(5, 5)))
	assert.False(t, a.Contains(Pt(11, 5)))
}

func TestRectExpandTo(t *testing.T) {
	r := EmptyRect()
	require.True(t, r.IsEmpty())

	// A point at the origin is a real point, not emptiness.
	r = r.ExpandTo(Pt(0, 0))
	r = r.ExpandTo(Pt(10, 5))
	assert.Equal(t, Pt(0, 0), r.Min)
	assert.Equal(t, Pt(10, 5), r.Max)

	r = r.ExpandTo(Pt(-3, 7))
	assert.Equal(t, Rect{Min: Pt(-3, 0), Max: Pt(10, 7)}, r)
}

func TestPathBoundsFromOrigin(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 20)

	b := p.Bounds()
	assert.Equal(t, Pt(0, 0), b.Min)
	assert.Equal(t, Pt(10, 20), b.Max)

	assert.Equal(t, Rect{}, NewPath().Bounds())
}

func TestMatrixTransform(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 2))
	p := m.TransformPoint(Pt(1, 1))
	assert.Equal(t, Pt(12, 22), p)

	// Vectors ignore translation.
	v := m.TransformVector(Pt(1, 1))
	assert.Equal(t, Pt(2, 2), v)

	inv := m.Invert()
	back := inv.TransformPoint(p)
	assert.InDelta(t, 1, back.X, 1e-12)
	assert.InDelta(t, 1, back.Y, 1e-12)

	assert.True(t, Identity().IsIdentity())
	assert.False(t, m.IsIdentity())
}

func TestMatrixRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	p := m.TransformPoint(Pt(1, 0))
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)
}
