package textflow

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/textflow/segment"
)

// applyGlyphs distributes the shaped glyph sequence over the character
// records. Every glyph is accumulated onto its cluster's record; the
// record of the first glyph of a cluster becomes the cluster leader
// and receives the visual index. Returns whether any character's
// shaped direction disagrees with its declared direction.
func (e *Engine) applyGlyphs(chars []CharacterResult, glyphs []ShapedGlyph) bool {
	isBidi := false
	for v := range glyphs {
		g := &glyphs[v]
		if g.Cluster < 0 || g.Cluster >= len(chars) {
			continue
		}
		cr := &chars[g.Cluster]
		if !cr.Addressable {
			continue
		}
		declaredRTL := cr.Direction == DirectionRTL
		if g.RTL != declaredRTL {
			isBidi = true
		}
		cr.Cursor.RTL = g.RTL

		fm := e.metricsFor(g.Face, g.FontSize)
		cr.face = fm

		// Glyph outline in local space, offset by the pen position of
		// glyphs already accumulated on this cluster.
		pen := cr.Advance
		payload, ink := e.loadGlyph(g, fm)
		off := Pt(g.XOffset, -g.YOffset).Add(pen)
		switch gl := payload.(type) {
		case OutlineGlyph:
			moved := gl.Path.Transform(Translate(off.X, off.Y))
			if existing, ok := cr.Glyph.(OutlineGlyph); ok && existing.Path != nil {
				existing.Path.Append(moved)
				cr.Glyph = existing
			} else {
				cr.Glyph = OutlineGlyph{Path: moved}
			}
		case BitmapGlyph:
			gl.Bounds = gl.Bounds.Translate(off)
			cr.Glyph = gl
		}
		cr.InkBounds = cr.InkBounds.Union(ink.Translate(off))

		if g.Vertical {
			cr.Advance = cr.Advance.Add(Pt(0, -g.YAdvance))
		} else {
			cr.Advance = cr.Advance.Add(Pt(g.XAdvance, 0))
		}
		if cr.VisualIndex < 0 {
			cr.VisualIndex = v
		}
	}
	return isBidi
}

// loadGlyph fetches the glyph payload from the face and converts it to
// document conventions (points, y down). Missing outlines fall back to
// an empty glyph with the advance preserved.
func (e *Engine) loadGlyph(g *ShapedGlyph, fm *faceMetrics) (Glyph, Rect) {
	var ink Rect
	if ext, ok := g.Face.GlyphExtents(g.GID); ok {
		x := float64(ext.XBearing) * fm.scale
		top := -float64(ext.YBearing) * fm.scale
		w := float64(ext.Width) * fm.scale
		h := -float64(ext.Height) * fm.scale // negative downward in font space
		ink = Rect{Min: Pt(x, top), Max: Pt(x+w, top+h)}
	}
	switch data := g.Face.GlyphData(g.GID).(type) {
	case font.GlyphOutline:
		return OutlineGlyph{Path: outlineToPath(data.Segments, fm.scale)}, ink
	case font.GlyphBitmap:
		format := "png"
		if data.Format == font.BlackAndWhite {
			format = "mono"
		}
		return BitmapGlyph{Data: data.Data, Format: format, Bounds: ink}, ink
	default:
		logger().Warn("glyph has no payload", "gid", g.GID)
		return nil, ink
	}
}

// outlineToPath converts font-unit outline segments to a Path in
// points, flipping y to grow downward.
func outlineToPath(segs []opentype.Segment, scale float64) *Path {
	p := NewPath()
	for _, seg := range segs {
		a := seg.Args
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			p.MoveTo(float64(a[0].X)*scale, -float64(a[0].Y)*scale)
		case opentype.SegmentOpLineTo:
			p.LineTo(float64(a[0].X)*scale, -float64(a[0].Y)*scale)
		case opentype.SegmentOpQuadTo:
			p.QuadraticTo(
				float64(a[0].X)*scale, -float64(a[0].Y)*scale,
				float64(a[1].X)*scale, -float64(a[1].Y)*scale)
		case opentype.SegmentOpCubeTo:
			p.CubicTo(
				float64(a[0].X)*scale, -float64(a[0].Y)*scale,
				float64(a[1].X)*scale, -float64(a[1].Y)*scale,
				float64(a[2].X)*scale, -float64(a[2].Y)*scale)
		}
	}
	if !p.IsEmpty() {
		p.Close()
	}
	return p
}

// mergeMiddles marks every addressable character that received no
// visual index as a mid-cluster character and folds its layout flags
// into the cluster leader. Middle characters keep a position derived
// from the leader so positional passes can still address them.
func mergeMiddles(chars []CharacterResult, bounds segment.Boundaries, plainIndex []int) {
	leader := -1
	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable {
			continue
		}
		if cr.VisualIndex >= 0 {
			leader = i
			continue
		}
		cr.Middle = true
		cr.Hidden = true
		if leader < 0 {
			continue
		}
		ld := &chars[leader]
		// The strongest break inside the cluster wins.
		if cr.BreakType > ld.BreakType {
			ld.BreakType = cr.BreakType
		}
		if cr.LineStart > ld.LineStart {
			ld.LineStart = cr.LineStart
		}
		if cr.LineEnd > ld.LineEnd {
			ld.LineEnd = cr.LineEnd
		}
		cr.CSSPosition = ld.CSSPosition.Add(ld.Advance)
		cr.face = ld.face
	}

	// Grapheme boundaries inside each cluster accumulate on the
	// leader, giving the caret its intra-ligature stops.
	leader = -1
	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable {
			continue
		}
		if !cr.Middle {
			leader = i
			cr.Cursor.GraphemeIndices = nil
		}
		if leader >= 0 && i < len(bounds.Grapheme) && bounds.Grapheme[i] {
			chars[leader].Cursor.GraphemeIndices = append(
				chars[leader].Cursor.GraphemeIndices, plainIndex[i]+1)
		}
	}
}

// appendHardBreakDummy inserts a synthetic zero-advance character
// after a trailing hard break so the line breaker emits the final
// empty line.
func appendHardBreakDummy(chars []CharacterResult, plainLen int, vertical bool) []CharacterResult {
	last := -1
	maxVisual := -1
	for i := range chars {
		if chars[i].Addressable && !chars[i].Middle {
			last = i
		}
		if chars[i].VisualIndex > maxVisual {
			maxVisual = chars[i].VisualIndex
		}
	}
	if last < 0 || chars[last].BreakType != HardBreak {
		return chars
	}
	src := chars[last]
	dummy := CharacterResult{
		Addressable:    true,
		AnchoredChunk:  true,
		VisualIndex:    maxVisual + 1,
		PlainTextIndex: plainLen,
		Direction:      src.Direction,
		Anchor:         src.Anchor,
		FontSize:       src.FontSize,
		CSSPosition:    src.CSSPosition.Add(src.Advance),
		Cursor:         CursorInfo{RTL: src.Cursor.RTL},
		face:           src.face,
	}
	// Keep the cross-axis advance so the empty line has a height.
	if vertical {
		dummy.Advance = Pt(src.Advance.X, 0)
	} else {
		dummy.Advance = Pt(0, src.Advance.Y)
	}
	return append(chars, dummy)
}
