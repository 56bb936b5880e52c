package textflow

import (
	"math"
	"sort"
)

// visualOrder returns the indices of addressable cluster leaders
// sorted by shaped visual index.
func visualOrder(chars []CharacterResult) []int {
	var out []int
	for i := range chars {
		if chars[i].Addressable && !chars[i].Middle && chars[i].VisualIndex >= 0 {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return chars[out[a]].VisualIndex < chars[out[b]].VisualIndex
	})
	return out
}

// inline extracts the inline-axis component of a vector.
func inline(p Point, vertical bool) float64 {
	if vertical {
		return p.Y
	}
	return p.X
}

// lineState accumulates one line while breaking.
type lineState struct {
	indices []int
	width   float64
}

// breaker drives greedy line breaking over the visual-order character
// sequence. The width for each candidate line is supplied by a
// callback so plain wrapping and shape flow share the commit logic.
type breaker struct {
	chars    []CharacterResult
	vertical bool
	rtl      bool

	// overflowWrap permits an emergency break inside a word when no
	// soft break opportunity exists on the line.
	overflowWrap bool

	lines []LineBox
	cur   lineState

	// lastBreak is the position in cur.indices after which the line
	// may be split, -1 when none seen yet.
	lastBreak int
}

func newBreaker(chars []CharacterResult, vertical, rtl bool) *breaker {
	return &breaker{chars: chars, vertical: vertical, rtl: rtl, lastBreak: -1}
}

// charWidth returns the advance a character contributes to the width
// check. Force-hung characters never count.
func (b *breaker) charWidth(i int) float64 {
	cr := &b.chars[i]
	if cr.LineEnd == ForceHang {
		return 0
	}
	return math.Abs(inline(cr.Advance, b.vertical))
}

// push adds a visual-order character to the current line, committing
// the line first when it would overflow the available width.
func (b *breaker) push(i int, width float64) {
	cr := &b.chars[i]
	w := b.charWidth(i)

	if b.cur.width+w > width && b.lastBreak >= 0 {
		// Conditionally hung trailing punctuation gets a second
		// chance: it may overflow without forcing a break.
		hangable := cr.LineEnd == ConditionallyHang && b.cur.width <= width
		if !hangable {
			b.commitAt(b.lastBreak + 1)
		}
	} else if b.cur.width+w > width && b.overflowWrap && len(b.cur.indices) > 0 {
		// Emergency break: the word alone is wider than the line.
		b.commitAt(len(b.cur.indices))
	}
	b.cur.indices = append(b.cur.indices, i)
	if !(len(b.cur.indices) == 1 && cr.LineStart == Collapse) {
		b.cur.width += w
	}
	if cr.BreakType == HardBreak {
		b.commitAt(len(b.cur.indices))
		return
	}
	if cr.BreakType == SoftBreak {
		b.lastBreak = len(b.cur.indices) - 1
	}
}

// commitAt closes the current line after n of its characters, carrying
// the remainder over to the next line.
func (b *breaker) commitAt(n int) {
	line := b.cur.indices[:n]
	rest := append([]int(nil), b.cur.indices[n:]...)

	// Trailing collapsible characters lose their advance.
	trimmed := len(line)
	for trimmed > 0 && b.chars[line[trimmed-1]].LineEnd == Collapse {
		b.chars[line[trimmed-1]].Hidden = true
		trimmed--
	}
	b.lines = append(b.lines, LineBox{Chunks: splitChunks(b.chars, line, b.vertical)})

	b.cur = lineState{}
	b.lastBreak = -1
	for _, i := range rest {
		if len(b.cur.indices) == 0 && b.chars[i].LineStart == Collapse {
			b.chars[i].Hidden = true
		}
		b.cur.indices = append(b.cur.indices, i)
		b.cur.width += b.charWidth(i)
		if b.chars[i].BreakType == SoftBreak {
			b.lastBreak = len(b.cur.indices) - 1
		}
	}
}

// finish commits any pending characters and returns the lines.
func (b *breaker) finish() []LineBox {
	if len(b.cur.indices) > 0 {
		b.commitAt(len(b.cur.indices))
	}
	return b.lines
}

// splitChunks partitions a line's characters into anchored chunks.
// Trailing conditionally hung punctuation keeps its advance out of the
// chunk length so alignment can let it overhang.
func splitChunks(chars []CharacterResult, indices []int, vertical bool) []LineChunk {
	var chunks []LineChunk
	var cur LineChunk
	for _, i := range indices {
		if chars[i].AnchoredChunk && len(cur.Indices) > 0 {
			chunks = append(chunks, cur)
			cur = LineChunk{}
		}
		cur.Indices = append(cur.Indices, i)
		cur.Length += math.Abs(inline(chars[i].Advance, vertical))
	}
	if len(cur.Indices) > 0 {
		chunks = append(chunks, cur)
	}
	if len(chunks) > 0 {
		last := &chunks[len(chunks)-1]
		for n := len(last.Indices) - 1; n >= 0; n-- {
			cr := &chars[last.Indices[n]]
			if cr.Hidden {
				continue
			}
			if cr.LineEnd != ConditionallyHang {
				break
			}
			adv := math.Abs(inline(cr.Advance, vertical))
			last.Length -= adv
			last.ConditionalHang += adv
		}
	}
	return chunks
}

// breakLines wraps the text to the given inline size and assigns
// every character its CSS position. Width is infinite when wrapping is
// disabled, so only hard breaks split lines.
func (e *Engine) breakLines(chars []CharacterResult, props Properties, vertical bool) []LineBox {
	width := math.Inf(1)
	if props.InlineSize != nil && props.TextWrap != NoWrap {
		width = *props.InlineSize
	}
	rtl := props.Direction == DirectionRTL
	b := newBreaker(chars, vertical, rtl)
	b.overflowWrap = props.OverflowWrap != OverflowWrapNormal
	for _, i := range visualOrder(chars) {
		b.push(i, width)
	}
	lines := b.finish()
	e.positionLines(chars, lines, vertical, rtl)
	updateMiddles(chars)
	return lines
}

// positionLines walks the finished lines, stacking them along the
// block axis and laying characters out along the inline axis. Baseline
// anchors for text-top and text-bottom alignment are recorded per
// line.
func (e *Engine) positionLines(chars []CharacterResult, lines []LineBox, vertical, rtl bool) {
	cross := 0.0
	for l := range lines {
		line := &lines[l]
		ascent, descent := lineExtents(chars, line)
		cross += ascent
		inlinePos := 0.0
		for _, chunk := range line.Chunks {
			for _, i := range chunk.Indices {
				cr := &chars[i]
				adv := inline(cr.Advance, vertical)
				if cr.Hidden {
					adv = 0
				}
				var pos Point
				if vertical {
					pos = Pt(-cross, inlinePos)
				} else {
					pos = Pt(inlinePos, cross)
				}
				if rtl && !vertical {
					pos.X -= adv
				}
				cr.CSSPosition = pos.Add(cr.BaselineOffset)
				if rtl && !vertical {
					inlinePos -= adv
				} else {
					inlinePos += adv
				}
			}
		}
		if vertical {
			line.BaselineTop = Pt(-cross+ascent, 0)
			line.BaselineBottom = Pt(-cross-descent, 0)
		} else {
			line.BaselineTop = Pt(0, cross-ascent)
			line.BaselineBottom = Pt(0, cross+descent)
		}
		line.ExpectedLineTop = lineCapHeight(chars, line)
		line.ActualLineTop = ascent
		line.ActualLineBottom = descent
		cross += descent
	}
}

// lineExtents returns the maximum ascent and descent over the line.
func lineExtents(chars []CharacterResult, line *LineBox) (float64, float64) {
	ascent, descent := 0.0, 0.0
	for _, chunk := range line.Chunks {
		for _, i := range chunk.Indices {
			if fm := chars[i].face; fm != nil {
				ascent = math.Max(ascent, fm.ascent)
				descent = math.Max(descent, fm.descent+fm.lineGap)
			}
		}
	}
	if ascent == 0 && descent == 0 {
		// Empty line keeps the height of the preceding content.
		for i := range chars {
			if fm := chars[i].face; fm != nil {
				ascent = math.Max(ascent, fm.ascent)
				descent = math.Max(descent, fm.descent+fm.lineGap)
			}
		}
	}
	return ascent, descent
}

// lineCapHeight returns the largest cap height over the line, the
// above-baseline extent used for first-line offsets in shape flow.
func lineCapHeight(chars []CharacterResult, line *LineBox) float64 {
	h := 0.0
	for _, chunk := range line.Chunks {
		for _, i := range chunk.Indices {
			if fm := chars[i].face; fm != nil {
				h = math.Max(h, fm.capHeight)
			}
		}
	}
	return h
}

// updateMiddles refreshes mid-cluster characters from their leader
// after a positioning pass.
func updateMiddles(chars []CharacterResult) {
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
			chars[i].CSSPosition = chars[leader].CSSPosition.Add(chars[leader].Advance)
			chars[i].FinalPosition = chars[i].CSSPosition
		}
	}
}
