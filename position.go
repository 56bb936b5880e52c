package textflow

import (
	"math"
	"sort"
)

const degToRad = math.Pi / 180

// applyRelativeOffsets folds dx/dy offsets into FinalPosition with a
// running shift, and applies per-character rotation. Runs only in
// SVG 1.1 mode.
func applyRelativeOffsets(chars []CharacterResult, resolved []resolvedTransform) {
	var shift Point
	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable || cr.Middle {
			continue
		}
		if i < len(resolved) {
			if resolved[i].dx != nil {
				shift.X += *resolved[i].dx
			}
			if resolved[i].dy != nil {
				shift.Y += *resolved[i].dy
			}
			if resolved[i].rotate != nil {
				cr.Rotate = *resolved[i].rotate * degToRad
			}
		}
		cr.FinalPosition = cr.CSSPosition.Add(shift)
	}
	updateMiddlesFinal(chars)
}

// applyAbsolutePositions recomputes the running shift at every
// character with an explicit x or y so its final position lands on the
// requested coordinate plus its own relative offset. Mid-cluster
// characters copy the previous character's position verbatim.
func applyAbsolutePositions(chars []CharacterResult, resolved []resolvedTransform) {
	var shift Point
	prev := -1
	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable {
			continue
		}
		if cr.Middle {
			if prev >= 0 {
				cr.FinalPosition = chars[prev].FinalPosition
			}
			continue
		}
		if i < len(resolved) {
			var dx, dy float64
			if resolved[i].dx != nil {
				dx = *resolved[i].dx
			}
			if resolved[i].dy != nil {
				dy = *resolved[i].dy
			}
			if resolved[i].x != nil {
				shift.X = *resolved[i].x + dx - cr.FinalPosition.X
			}
			if resolved[i].y != nil {
				shift.Y = *resolved[i].y + dy - cr.FinalPosition.Y
			}
		}
		cr.FinalPosition = cr.FinalPosition.Add(shift)
		prev = i
	}
}

// applyTextLength walks the tree bottom-up stretching every span with
// an explicit textLength, then propagates each span's total shift to
// the characters that follow it up to the next anchored chunk.
func (e *Engine) applyTextLength(n *Node, c *collection, chars []CharacterResult, vertical bool) {
	for _, child := range n.Children {
		e.applyTextLength(child, c, chars, vertical)
	}
	if n.TextLength == nil {
		return
	}
	e.stretchSpan(n, c, chars, vertical)
}

func (e *Engine) stretchSpan(n *Node, c *collection, chars []CharacterResult, vertical bool) {
	sp := c.spans[n]
	var indices []int
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		if chars[i].Addressable && !chars[i].Middle && chars[i].VisualIndex >= 0 {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return
	}
	sort.Slice(indices, func(a, b int) bool {
		return chars[indices[a]].VisualIndex < chars[indices[b]].VisualIndex
	})

	// Measure the visual extent of the span along the inline axis.
	a, b := math.Inf(1), math.Inf(-1)
	fresh := 0
	for _, i := range indices {
		pos := inline(chars[i].FinalPosition, vertical)
		adv := inline(chars[i].Advance, vertical)
		a = math.Min(a, math.Min(pos, pos+adv))
		b = math.Max(b, math.Max(pos, pos+adv))
		if !chars[i].TextLengthApplied {
			fresh++
		}
	}
	delta := *n.TextLength - (b - a)
	scaleGlyphs := n.LengthAdjust == SpacingAndGlyphs
	count := fresh
	if !scaleGlyphs {
		// Spacing-only stretch distributes over the gaps between
		// characters, one fewer than the characters themselves.
		count--
	}
	if count <= 0 {
		return
	}
	per := delta / float64(count)

	shift := 0.0
	for _, i := range indices {
		cr := &chars[i]
		if scaleGlyphs {
			adv := inline(cr.Advance, vertical)
			if adv != 0 && !cr.TextLengthApplied {
				factor := per/adv + 1
				scaleInline(cr, factor, vertical)
			}
		}
		applyInlineShift(cr, shift, vertical)
		if !cr.TextLengthApplied {
			shift += per
		}
		cr.TextLengthApplied = true
	}

	e.propagateShift(n, c, chars, delta, vertical, indices)
	updateMiddlesFinal(chars)
}

// scaleInline scales a character's outline, advance and ink box along
// the inline axis.
func scaleInline(cr *CharacterResult, factor float64, vertical bool) {
	var m Matrix
	if vertical {
		m = Scale(1, factor)
		cr.Advance.Y *= factor
		cr.InkBounds.Min.Y *= factor
		cr.InkBounds.Max.Y *= factor
	} else {
		m = Scale(factor, 1)
		cr.Advance.X *= factor
		cr.InkBounds.Min.X *= factor
		cr.InkBounds.Max.X *= factor
	}
	if g, ok := cr.Glyph.(OutlineGlyph); ok && g.Path != nil {
		cr.Glyph = OutlineGlyph{Path: g.Path.Transform(m)}
	}
}

func applyInlineShift(cr *CharacterResult, shift float64, vertical bool) {
	if vertical {
		cr.FinalPosition.Y += shift
	} else {
		cr.FinalPosition.X += shift
	}
}

// propagateShift moves everything visually after the stretched span by
// its total delta, bounded by the surrounding anchored chunks. Only
// characters later in visual order than the span move, so in bidi text
// the scan runs logically forward and backward from the span.
func (e *Engine) propagateShift(n *Node, c *collection, chars []CharacterResult, delta float64, vertical bool, spanIndices []int) {
	sp := c.spans[n]
	lastVisual := -1
	for _, i := range spanIndices {
		if chars[i].VisualIndex > lastVisual {
			lastVisual = chars[i].VisualIndex
		}
	}
	for i := sp.end; i < len(chars); i++ {
		cr := &chars[i]
		if cr.AnchoredChunk {
			break
		}
		if !cr.Addressable || cr.Middle {
			continue
		}
		if cr.VisualIndex > lastVisual {
			applyInlineShift(cr, delta, vertical)
		}
	}
	// Characters logically before the span can still sit visually
	// after it when the paragraph is RTL.
	for i := sp.start; i >= 0 && i < len(chars); i-- {
		cr := &chars[i]
		if cr.Addressable && !cr.Middle && cr.VisualIndex > lastVisual {
			applyInlineShift(cr, delta, vertical)
		}
		if cr.AnchoredChunk {
			break
		}
	}
}

// applyAnchoring shifts every anchored-chunk run so its anchor point
// lands at the start, middle or end of the run's visual extent. RTL
// chunks flip start and end.
func applyAnchoring(chars []CharacterResult, resolved []resolvedTransform, vertical bool) {
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		anchorRun(chars, resolved, runStart, end, vertical)
	}
	for i := range chars {
		if !chars[i].Addressable {
			continue
		}
		if chars[i].AnchoredChunk {
			flush(i)
			runStart = i
		}
	}
	flush(len(chars))
	updateMiddlesFinal(chars)
}

func anchorRun(chars []CharacterResult, resolved []resolvedTransform, start, end int, vertical bool) {
	a, b := math.Inf(1), math.Inf(-1)
	for i := start; i < end; i++ {
		cr := &chars[i]
		if !cr.Addressable || cr.Middle {
			continue
		}
		pos := inline(cr.FinalPosition, vertical)
		adv := inline(cr.Advance, vertical)
		a = math.Min(a, math.Min(pos, pos+adv))
		b = math.Max(b, math.Max(pos, pos+adv))
	}
	if math.IsInf(a, 1) {
		return
	}

	// The anchor point is the chunk's explicit position when it has
	// one, otherwise where the chunk currently starts.
	anchorPos := inline(chars[start].FinalPosition, vertical)
	if start < len(resolved) {
		if vertical && resolved[start].y != nil {
			anchorPos = *resolved[start].y
		} else if !vertical && resolved[start].x != nil {
			anchorPos = *resolved[start].x
		}
	}

	anchor := chars[start].Anchor
	rtl := chars[start].Direction == DirectionRTL
	var shift float64
	switch {
	case anchor == AnchorMiddle:
		shift = anchorPos - (a+b)/2
	case (anchor == AnchorStart) != rtl:
		shift = anchorPos - a
	default:
		shift = anchorPos - b
	}
	if shift == 0 {
		return
	}
	for i := start; i < end; i++ {
		if chars[i].Addressable && !chars[i].Middle {
			applyInlineShift(&chars[i], shift, vertical)
		}
	}
}

// updateMiddlesFinal refreshes mid-cluster characters' final position
// from their leader.
func updateMiddlesFinal(chars []CharacterResult) {
	leader := -1
	for i := range chars {
		if !chars[i].Addressable {
			continue
		}
		if !chars[i].Middle {
			leader = i
			continue
		}
		if leader >= 0 {
			chars[i].FinalPosition = chars[leader].FinalPosition.Add(chars[leader].Advance)
		}
	}
}
