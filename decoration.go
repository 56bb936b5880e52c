package textflow

import "math"

// minDecorationThickness returns the thinnest allowed decoration
// stroke, one device pixel expressed in points.
func (e *Engine) minDecorationThickness() float64 {
	dpi := e.DPI
	if dpi <= 0 {
		dpi = 72
	}
	return 72 / dpi
}

// computeDecorations builds underline, overline and line-through
// geometry for every node that declares decoration lines. One path is
// generated per anchored-chunk run of the node's span, positioned from
// the run's measured ink and the face's decoration metrics.
func (e *Engine) computeDecorations(root *Node, c *collection, chars []CharacterResult, defaults Properties) []DecorationPath {
	var out []DecorationPath
	rootProps := root.Properties.Inherit(defaults)
	var walk func(n *Node, props Properties, onPath bool)
	walk = func(n *Node, props Properties, onPath bool) {
		onPath = onPath || n.TextPath != nil
		if n.Properties.Has(PropDecoration) && props.Decoration != DecorationNone {
			out = append(out, e.decorateNode(n, c, chars, props, onPath)...)
		}
		for _, child := range n.Children {
			walk(child, child.Properties.Inherit(props), onPath)
		}
	}
	walk(root, rootProps, false)
	return out
}

func (e *Engine) decorateNode(n *Node, c *collection, chars []CharacterResult, props Properties, onPath bool) []DecorationPath {
	sp := c.spans[n]
	vertical := props.WritingMode.IsVertical()
	fm := firstFaceIn(chars, sp)
	if fm == nil {
		return nil
	}
	minW := e.minDecorationThickness()
	width := math.Max(fm.underlineThickness, minW)
	color := props.DecorationColor
	if !props.Has(PropDecorationColor) {
		color = props.Fill
	}

	var out []DecorationPath
	for _, run := range anchoredRuns(chars, sp) {
		box, firstPos := runBox(chars, run)
		if box.IsEmpty() {
			continue
		}
		for _, line := range []Decoration{DecorationUnderline, DecorationOverline, DecorationLineThrough} {
			if props.Decoration&line == 0 {
				continue
			}
			offset := e.decorationOffset(line, props, fm, box, firstPos, vertical, width)
			p := e.decorationLine(props.DecorationStyle, box, offset, width, vertical, onPath)
			if p.IsEmpty() {
				continue
			}
			out = append(out, DecorationPath{
				Line:   line,
				Path:   p,
				Stroke: decorationStroke(props.DecorationStyle, width),
				Color:  color,
				node:   n,
			})
		}
	}
	return out
}

// anchoredRuns splits a span into runs of addressable characters
// separated by anchored-chunk starts.
func anchoredRuns(chars []CharacterResult, sp span) [][]int {
	var runs [][]int
	var cur []int
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		if !chars[i].Addressable || chars[i].Hidden && chars[i].Middle {
			continue
		}
		if chars[i].AnchoredChunk && len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
		cur = append(cur, i)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// runBox unions the layout boxes of a run in document space and
// returns it with the first character's position.
func runBox(chars []CharacterResult, run []int) (Rect, Point) {
	var box Rect
	var first Point
	for k, i := range run {
		cr := &chars[i]
		if k == 0 {
			first = cr.FinalPosition
		}
		box = box.Union(cr.LayoutBox.Translate(cr.FinalPosition))
	}
	return box, first
}

// decorationOffset computes the cross-axis position of a decoration
// line. Underline sits at the font's underline offset, or below the
// box for the "under" position; overline hugs the top ink; line
// through crosses at the strike offset.
func (e *Engine) decorationOffset(line Decoration, props Properties, fm *faceMetrics, box Rect, firstPos Point, vertical bool, width float64) float64 {
	if vertical {
		switch line {
		case DecorationOverline:
			return box.Min.X
		case DecorationLineThrough:
			return firstPos.X
		default:
			if props.UnderlinePosition == UnderlineRight {
				return box.Max.X + width
			}
			return box.Min.X - width
		}
	}
	switch line {
	case DecorationOverline:
		return box.Min.Y
	case DecorationLineThrough:
		return firstPos.Y + fm.strikeOffset
	default:
		if props.UnderlinePosition == UnderlineUnder {
			return box.Max.Y + width
		}
		return firstPos.Y + fm.underlineOffset
	}
}

// decorationLine builds the geometry for one decoration run. Solid,
// dotted and dashed styles share a single straight line (the dash
// pattern lives in the stroke); double and wavy emit their shape
// directly. On a text path the line is pre-segmented so bending keeps
// it snug to the curve.
func (e *Engine) decorationLine(style DecorationStyle, box Rect, offset, width float64, vertical, onPath bool) *Path {
	lo, hi := box.Min.X, box.Max.X
	if vertical {
		lo, hi = box.Min.Y, box.Max.Y
	}
	p := NewPath()
	switch style {
	case Double:
		gap := math.Max(1.5*width, 2*e.minDecorationThickness())
		straightLine(p, lo, hi, offset, vertical, onPath, width)
		straightLine(p, lo, hi, offset+gap, vertical, onPath, width)
	case Wavy:
		wavyLine(p, lo, hi, offset, width, vertical)
	default:
		straightLine(p, lo, hi, offset, vertical, onPath, width)
	}
	return p
}

// straightLine appends a line from lo to hi at the given cross offset.
// When segmented for a path, pieces are two stroke widths long.
func straightLine(p *Path, lo, hi, offset float64, vertical, segmented bool, width float64) {
	emit := func(a, b float64) {
		if vertical {
			p.MoveTo(offset, a)
			p.LineTo(offset, b)
		} else {
			p.MoveTo(a, offset)
			p.LineTo(b, offset)
		}
	}
	if !segmented {
		emit(lo, hi)
		return
	}
	step := width * 2
	for x := lo; x < hi; x += step {
		emit(x, math.Min(x+step, hi))
	}
}

// wavyLine appends a zig-zag of height two stroke widths, with the
// leftover tail interpolated so the wave ends exactly at the run's
// end. The wave is built along x and rotated into place for vertical
// writing.
func wavyLine(p *Path, lo, hi, offset, width float64, vertical bool) {
	height := 2 * width
	step := height
	length := hi - lo
	if length <= 0 {
		return
	}
	wave := NewPath()
	wave.MoveTo(0, 0)
	up := true
	for x := 0.0; x < length; {
		next := math.Min(x+step, length)
		y := height / 2
		if up {
			y = -height / 2
		}
		if next-x < step {
			// Leftover tail keeps the wave's slope.
			y *= (next - x) / step
		}
		wave.LineTo(next, y)
		up = !up
		x = next
	}
	var m Matrix
	if vertical {
		// Rotate a quarter turn and place along the y axis.
		m = Translate(offset, lo).Multiply(Rotate(halfPi))
	} else {
		m = Translate(lo, offset)
	}
	p.Append(wave.Transform(m))
}
