package textflow

import "math"

// PathElement is one element of a vector path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path built from move, line, curve and close elements.
// Glyph outlines, decoration lines and text paths are all represented as
// Path values.
type Path struct {
	elements []PathElement
	start    Point
	current  Point

	// flattened polyline, built lazily for arc-length queries.
	flat    []Point
	flatLen []float64 // cumulative length up to flat[i]
}

// NewPath returns a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.dirty()
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
	p.dirty()
}

// QuadraticTo draws a quadratic Bezier curve to (x, y).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
	p.current = Pt(x, y)
	p.dirty()
}

// CubicTo draws a cubic Bezier curve to (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
	p.dirty()
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.dirty()
}

// Rectangle appends an axis-aligned rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement { return p.elements }

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool { return p == nil || len(p.elements) == 0 }

// IsClosed reports whether the last subpath is closed, or whether its
// end point coincides with its start point.
func (p *Path) IsClosed() bool {
	if p.IsEmpty() {
		return false
	}
	if _, ok := p.elements[len(p.elements)-1].(Close); ok {
		return true
	}
	return p.current.Distance(p.start) < 1e-9
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	q := NewPath()
	q.elements = append(q.elements, p.elements...)
	q.start = p.start
	q.current = p.current
	return q
}

// Append appends all elements of q to p.
func (p *Path) Append(q *Path) {
	if q.IsEmpty() {
		return
	}
	p.elements = append(p.elements, q.elements...)
	p.start = q.start
	p.current = q.current
	p.dirty()
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	out := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			out.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			out.LineTo(pt.X, pt.Y)
		case QuadTo:
			c := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			out.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			out.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			out.Close()
		}
	}
	return out
}

// Reversed returns the path with element order and direction reversed.
// Used for text on the right side of a path.
func (p *Path) Reversed() *Path {
	pts := p.polyline()
	out := NewPath()
	for i := len(pts) - 1; i >= 0; i-- {
		if i == len(pts)-1 {
			out.MoveTo(pts[i].X, pts[i].Y)
		} else {
			out.LineTo(pts[i].X, pts[i].Y)
		}
	}
	return out
}

// Bounds returns the control-point bounding box of the path, or the
// zero Rect for a path with no elements.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() {
		return Rect{}
	}
	r := EmptyRect()
	add := func(pt Point) {
		r = r.ExpandTo(pt)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return r
}

const flattenSteps = 16

func (p *Path) dirty() {
	p.flat = nil
	p.flatLen = nil
}

// polyline returns the path flattened to a polyline. Curves are split
// into fixed subdivisions, which is accurate enough for glyph placement.
func (p *Path) polyline() []Point {
	if p.flat != nil {
		return p.flat
	}
	var pts []Point
	var cur, start Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			cur = e.Point
			start = e.Point
			pts = append(pts, cur)
		case LineTo:
			cur = e.Point
			pts = append(pts, cur)
		case QuadTo:
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				a := cur.Lerp(e.Control, t)
				b := e.Control.Lerp(e.Point, t)
				pts = append(pts, a.Lerp(b, t))
			}
			cur = e.Point
		case CubicTo:
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				a := cur.Lerp(e.Control1, t)
				b := e.Control1.Lerp(e.Control2, t)
				c := e.Control2.Lerp(e.Point, t)
				ab := a.Lerp(b, t)
				bc := b.Lerp(c, t)
				pts = append(pts, ab.Lerp(bc, t))
			}
			cur = e.Point
		case Close:
			pts = append(pts, start)
			cur = start
		}
	}
	p.flat = pts
	p.flatLen = make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		p.flatLen[i] = p.flatLen[i-1] + pts[i].Distance(pts[i-1])
	}
	return pts
}

// subpolylines returns the path flattened to one polyline per subpath.
// A closed subpath repeats its first point at the end.
func (p *Path) subpolylines() [][]Point {
	var out [][]Point
	var cur []Point
	var pos, start Point
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			pos = e.Point
			start = e.Point
			cur = append(cur, pos)
		case LineTo:
			pos = e.Point
			cur = append(cur, pos)
		case QuadTo:
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				a := pos.Lerp(e.Control, t)
				b := e.Control.Lerp(e.Point, t)
				cur = append(cur, a.Lerp(b, t))
			}
			pos = e.Point
		case CubicTo:
			for i := 1; i <= flattenSteps; i++ {
				t := float64(i) / flattenSteps
				a := pos.Lerp(e.Control1, t)
				b := e.Control1.Lerp(e.Control2, t)
				c := e.Control2.Lerp(e.Point, t)
				ab := a.Lerp(b, t)
				bc := b.Lerp(c, t)
				cur = append(cur, ab.Lerp(bc, t))
			}
			pos = e.Point
		case Close:
			cur = append(cur, start)
			pos = start
		}
	}
	flush()
	return out
}

// Length returns the total arc length of the path.
func (p *Path) Length() float64 {
	pts := p.polyline()
	if len(pts) == 0 {
		return 0
	}
	return p.flatLen[len(pts)-1]
}

// PointAtLength returns the point at arc length d along the path.
// d is clamped to [0, Length].
func (p *Path) PointAtLength(d float64) Point {
	pts := p.polyline()
	if len(pts) == 0 {
		return Point{}
	}
	i := p.segmentAt(&d)
	if i >= len(pts)-1 {
		return pts[len(pts)-1]
	}
	seg := p.flatLen[i+1] - p.flatLen[i]
	if seg == 0 {
		return pts[i]
	}
	return pts[i].Lerp(pts[i+1], d/seg)
}

// AngleAtLength returns the tangent angle, in radians, at arc length d.
func (p *Path) AngleAtLength(d float64) float64 {
	pts := p.polyline()
	if len(pts) < 2 {
		return 0
	}
	i := p.segmentAt(&d)
	if i >= len(pts)-1 {
		i = len(pts) - 2
	}
	// Skip zero-length segments.
	for i > 0 && pts[i+1] == pts[i] {
		i--
	}
	t := pts[i+1].Sub(pts[i])
	return math.Atan2(t.Y, t.X)
}

// segmentAt finds the polyline segment containing arc length *d and
// rewrites *d to the offset inside that segment.
func (p *Path) segmentAt(d *float64) int {
	if *d < 0 {
		*d = 0
	}
	total := p.flatLen[len(p.flatLen)-1]
	if *d > total {
		*d = total
	}
	lo, hi := 0, len(p.flatLen)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.flatLen[mid] <= *d {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	*d -= p.flatLen[lo]
	return lo
}
