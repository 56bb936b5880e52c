package textflow

import "math"

// applyTextPath bends every path-anchored top-level subtree onto its
// path. Nested text paths are not supported; only direct children of
// the root are honored. Characters whose anchor point falls off an
// open path are hidden; closed paths wrap positions around.
func (e *Engine) applyTextPath(root *Node, c *collection, chars []CharacterResult, decorations []DecorationPath, defaults Properties) {
	rootProps := root.Properties.Inherit(defaults)
	vertical := rootProps.WritingMode.IsVertical()

	var carry Point
	carryActive := false
	for _, child := range root.Children {
		sp := c.spans[child]
		if child.TextPath == nil {
			// After a path ends, following text carries the path's
			// end point forward until the next anchored chunk.
			if carryActive {
				carryActive = e.carryAfterPath(chars, sp, carry)
			}
			continue
		}
		end, ok := e.bendSubtree(child, c, chars, vertical)
		if ok {
			carry = end
			carryActive = true
		}
		bendDecorations(decorations, child, c, vertical)
	}
}

// bendSubtree maps one subtree onto its path and returns the path-end
// carry point for subsequent text.
func (e *Engine) bendSubtree(n *Node, c *collection, chars []CharacterResult, vertical bool) (Point, bool) {
	tp := n.TextPath
	if tp.Path.IsEmpty() {
		logger().Warn("text path has no geometry")
		return Point{}, false
	}
	path := tp.Path
	if tp.Side == SideRight {
		path = path.Reversed()
	}
	length := path.Length()
	if length <= 0 {
		return Point{}, false
	}
	offset := tp.offset(length)
	closed := path.IsClosed()
	sp := c.spans[n]

	var endPoint Point
	placed := false
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		cr := &chars[i]
		if !cr.Addressable || cr.Middle {
			continue
		}
		adv := inline(cr.Advance, vertical)
		mid := inline(cr.FinalPosition, vertical) + adv/2
		target := mid + offset
		if closed {
			target = math.Mod(target, length)
			if target < 0 {
				target += length
			}
		} else if target < 0 || target > length {
			cr.Hidden = true
			continue
		}

		if tp.Method == Stretch {
			e.stretchGlyphOnPath(cr, path, offset, length, closed, vertical)
			// The carry point is where the character ends on the path.
			endPoint = path.PointAtLength(clampPathPos(target+adv/2, length, closed))
			placed = true
			continue
		}

		pt := path.PointAtLength(target)
		theta := path.AngleAtLength(target)
		sin, cos := math.Sincos(theta)
		tangent := Pt(cos, sin)
		normal := Pt(-sin, cos)
		if vertical {
			cr.Rotate += theta - halfPi
			cross := cr.FinalPosition.X
			cr.FinalPosition = pt.Sub(tangent.Mul(adv / 2)).Add(normal.Mul(cross))
		} else {
			cr.Rotate += theta
			cross := cr.FinalPosition.Y
			cr.FinalPosition = pt.Sub(tangent.Mul(adv / 2)).Add(normal.Mul(cross))
		}
		endPoint = cr.FinalPosition.Add(tangent.Mul(adv))
		placed = true
	}
	updateMiddlesFinal(chars)
	return endPoint, placed
}

// stretchGlyphOnPath warps the glyph outline along the path instead of
// rotating it rigidly. The character's own rotation is folded into the
// warp so it is not applied twice.
func (e *Engine) stretchGlyphOnPath(cr *CharacterResult, path *Path, offset, length float64, closed, vertical bool) {
	g, ok := cr.Glyph.(OutlineGlyph)
	if !ok || g.Path.IsEmpty() {
		cr.Hidden = true
		return
	}
	// Bring the outline into layout space, including the char's own
	// rotation, then warp every point onto the path.
	local := Rotate(cr.Rotate)
	place := Translate(cr.FinalPosition.X, cr.FinalPosition.Y).Multiply(local)
	doc := g.Path.Transform(place)

	warped := warpOntoPath(doc, path, offset, length, closed, vertical)
	cr.Glyph = OutlineGlyph{Path: warped}
	cr.Rotate = 0

	mid := inline(cr.FinalPosition, vertical) + inline(cr.Advance, vertical)/2
	target := clampPathPos(mid+offset, length, closed)
	cr.FinalPosition = path.PointAtLength(target)
	// The outline is already absolute; the renderer's translation by
	// FinalPosition must be undone.
	cr.Glyph = OutlineGlyph{Path: warped.Transform(Translate(-cr.FinalPosition.X, -cr.FinalPosition.Y))}
}

func clampPathPos(t, length float64, closed bool) float64 {
	if closed {
		t = math.Mod(t, length)
		if t < 0 {
			t += length
		}
		return t
	}
	return math.Max(0, math.Min(t, length))
}

// warpOntoPath maps every flattened point of p: the inline coordinate
// becomes an arc length along the path, the cross coordinate an offset
// along the local normal. Each subpath of p warps into its own subpath
// so multi-contour outlines keep their holes.
func warpOntoPath(p *Path, path *Path, offset, length float64, closed, vertical bool) *Path {
	out := NewPath()
	for _, contour := range p.subpolylines() {
		for i, pt := range contour {
			arc := pt.X + offset
			cross := pt.Y
			if vertical {
				arc = pt.Y + offset
				cross = -pt.X
			}
			arc = clampPathPos(arc, length, closed)
			base := path.PointAtLength(arc)
			theta := path.AngleAtLength(arc)
			sin, cos := math.Sincos(theta)
			mapped := base.Add(Pt(-sin, cos).Mul(cross))
			if i == 0 {
				out.MoveTo(mapped.X, mapped.Y)
			} else {
				out.LineTo(mapped.X, mapped.Y)
			}
		}
		if contour[0] == contour[len(contour)-1] {
			out.Close()
		}
	}
	return out
}

// carryAfterPath shifts a following non-path span by the path end
// carry and reports whether the carry continues past it.
func (e *Engine) carryAfterPath(chars []CharacterResult, sp span, carry Point) bool {
	delta := carry.Sub(firstFinal(chars, sp))
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		cr := &chars[i]
		if !cr.Addressable {
			continue
		}
		if cr.AnchoredChunk && i > sp.start {
			return false
		}
		cr.FinalPosition = cr.FinalPosition.Add(delta)
	}
	return true
}

func firstFinal(chars []CharacterResult, sp span) Point {
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		if chars[i].Addressable {
			return chars[i].FinalPosition
		}
	}
	return Point{}
}

// bendDecorations warps decoration paths generated for a path-anchored
// subtree onto the same path.
func bendDecorations(decorations []DecorationPath, n *Node, c *collection, vertical bool) {
	tp := n.TextPath
	if tp == nil || tp.Path.IsEmpty() {
		return
	}
	path := tp.Path
	if tp.Side == SideRight {
		path = path.Reversed()
	}
	length := path.Length()
	if length <= 0 {
		return
	}
	offset := tp.offset(length)
	closed := path.IsClosed()
	for i := range decorations {
		if !nodeContains(n, decorations[i].node) {
			continue
		}
		decorations[i].Path = warpOntoPath(decorations[i].Path, path, offset, length, closed, vertical)
	}
}

func nodeContains(root, n *Node) bool {
	if n == nil {
		return false
	}
	if root == n {
		return true
	}
	for _, child := range root.Children {
		if nodeContains(child, n) {
			return true
		}
	}
	return false
}
