package textflow

import (
	"math"
	"sort"
)

// interval is a 1D inline-axis range.
type interval struct {
	lo, hi float64
}

func (iv interval) width() float64 { return iv.hi - iv.lo }

// crossingsAt returns the x positions where a horizontal scanline at y
// crosses the polygon.
func crossingsAt(poly []Point, y float64) []float64 {
	var xs []float64
	for i := 0; i < len(poly); i++ {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		if (a.Y <= y) == (b.Y <= y) {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		xs = append(xs, a.X+t*(b.X-a.X))
	}
	sort.Float64s(xs)
	return xs
}

// insideIntervals returns the even-odd inside intervals of a polygon
// at scanline y.
func insideIntervals(poly []Point, y float64) []interval {
	xs := crossingsAt(poly, y)
	var out []interval
	for i := 0; i+1 < len(xs); i += 2 {
		out = append(out, interval{xs[i], xs[i+1]})
	}
	return out
}

// intersect returns the pairwise intersection of two interval sets.
func intersect(a, b []interval) []interval {
	var out []interval
	for _, x := range a {
		for _, y := range b {
			lo := math.Max(x.lo, y.lo)
			hi := math.Min(x.hi, y.hi)
			if lo < hi {
				out = append(out, interval{lo, hi})
			}
		}
	}
	return out
}

// subtract removes interval set b from interval set a.
func subtract(a, b []interval) []interval {
	out := a
	for _, cut := range b {
		var next []interval
		for _, iv := range out {
			if cut.hi <= iv.lo || cut.lo >= iv.hi {
				next = append(next, iv)
				continue
			}
			if cut.lo > iv.lo {
				next = append(next, interval{iv.lo, cut.lo})
			}
			if cut.hi < iv.hi {
				next = append(next, interval{cut.hi, iv.hi})
			}
		}
		out = next
	}
	return out
}

// slabSamples controls how many scanlines approximate a line slab.
const slabSamples = 4

// slabIntervals computes the usable inline intervals for a line whose
// cross extent is [top, bottom], inside the flow shapes and outside
// the subtracted ones.
func slabIntervals(inside, exclude [][]Point, top, bottom float64) []interval {
	var avail []interval
	for _, poly := range inside {
		ivs := polySlab(poly, top, bottom)
		avail = append(avail, ivs...)
	}
	sort.Slice(avail, func(i, j int) bool { return avail[i].lo < avail[j].lo })
	for _, poly := range exclude {
		// Excluded regions cut at their widest point in the slab.
		var cut []interval
		for s := 0; s <= slabSamples; s++ {
			y := top + (bottom-top)*float64(s)/slabSamples
			cut = append(cut, insideIntervals(poly, y)...)
		}
		avail = subtract(avail, cut)
	}
	return avail
}

// polySlab intersects the polygon's inside intervals across several
// scanlines of the slab, so the whole line height fits.
func polySlab(poly []Point, top, bottom float64) []interval {
	var out []interval
	for s := 0; s <= slabSamples; s++ {
		y := top + (bottom-top)*float64(s)/slabSamples
		ivs := insideIntervals(poly, y)
		if s == 0 {
			out = ivs
		} else {
			out = intersect(out, ivs)
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

// flattenShapes converts flow shapes to polygons.
func flattenShapes(shapes []*Path) [][]Point {
	var out [][]Point
	for _, p := range shapes {
		if p.IsEmpty() {
			continue
		}
		out = append(out, p.polyline())
	}
	return out
}

// flowTextInShapes lays the text into the flow regions line by line.
// Each line claims a horizontal slab of the shapes, possibly split
// into several segments around excluded geometry; characters fill the
// segments greedily in visual order.
func (e *Engine) flowTextInShapes(chars []CharacterResult, props Properties, vertical bool) []LineBox {
	inside := flattenShapes(props.ShapesInside)
	exclude := flattenShapes(props.ShapesSubtract)
	if len(inside) == 0 {
		return e.breakLines(chars, props, vertical)
	}

	top := math.Inf(1)
	bottom := math.Inf(-1)
	for _, poly := range inside {
		for _, p := range poly {
			top = math.Min(top, p.Y)
			bottom = math.Max(bottom, p.Y)
		}
	}

	visual := visualOrder(chars)
	var lines []LineBox
	pos := 0
	y := top
	for pos < len(visual) && y < bottom {
		ascent, descent, capH := extentsAhead(chars, visual[pos:])
		if len(lines) == 0 && capH > 0 {
			// The first baseline sits a cap height below the shape
			// top, not a full ascent.
			ascent = capH
		}
		lineTop := y
		lineBottom := y + ascent + descent
		segments := slabIntervals(inside, exclude, lineTop, lineBottom)
		if len(segments) == 0 {
			y += (ascent + descent) / 2
			continue
		}
		line, used := e.fillLine(chars, visual[pos:], segments, ascent, descent, capH, lineTop)
		if used == 0 {
			y += (ascent + descent) / 2
			continue
		}
		lines = append(lines, line)
		pos += used
		y = lineBottom
	}

	// Overflow: anything that did not fit is hidden, matching CSS
	// shape-inside overflow behavior.
	for _, i := range visual[pos:] {
		chars[i].Hidden = true
		chars[i].CSSPosition = Pt(0, bottom)
	}
	updateMiddles(chars)
	return lines
}

// extentsAhead estimates the next line's ascent, descent and cap
// height from the first run of characters still to be placed.
func extentsAhead(chars []CharacterResult, visual []int) (float64, float64, float64) {
	ascent, descent, capH := 0.0, 0.0, 0.0
	for n, i := range visual {
		if n > 32 {
			break
		}
		if fm := chars[i].face; fm != nil {
			ascent = math.Max(ascent, fm.ascent)
			descent = math.Max(descent, fm.descent+fm.lineGap)
			capH = math.Max(capH, fm.capHeight)
		}
	}
	if ascent == 0 {
		ascent, descent = 10, 3
	}
	return ascent, descent, capH
}

// fillLine places characters into the line's segments and returns the
// finished LineBox plus the number of characters consumed.
func (e *Engine) fillLine(chars []CharacterResult, visual []int, segments []interval, ascent, descent, capH, lineTop float64) (LineBox, int) {
	baseline := lineTop + ascent
	line := LineBox{
		BaselineTop:      Pt(segments[0].lo, lineTop),
		BaselineBottom:   Pt(segments[0].lo, baseline+descent),
		ExpectedLineTop:  capH,
		ActualLineTop:    ascent,
		ActualLineBottom: descent,
	}
	used := 0
	for _, seg := range segments {
		x := seg.lo
		var chunk LineChunk
		lastBreak := -1
		lastBreakX := x
		for used < len(visual) {
			i := visual[used]
			cr := &chars[i]
			adv := math.Abs(inline(cr.Advance, false))
			if len(chunk.Indices) == 0 && cr.LineStart == Collapse {
				cr.Hidden = true
				adv = 0
			}
			if x+adv > seg.hi && lastBreak >= 0 {
				// Roll back to the last break opportunity.
				for len(chunk.Indices) > lastBreak+1 {
					used--
					chunk.Indices = chunk.Indices[:len(chunk.Indices)-1]
				}
				x = lastBreakX
				break
			}
			if x+adv > seg.hi && len(chunk.Indices) > 0 {
				break
			}
			cr.CSSPosition = Pt(x, baseline).Add(cr.BaselineOffset)
			x += adv
			chunk.Indices = append(chunk.Indices, i)
			used++
			if cr.BreakType == HardBreak {
				break
			}
			if cr.BreakType == SoftBreak {
				lastBreak = len(chunk.Indices) - 1
				lastBreakX = x
			}
		}
		if len(chunk.Indices) > 0 {
			chunk.Length = x - seg.lo
			line.Chunks = append(line.Chunks, chunk)
		}
		if used > 0 && used < len(visual) && chars[visual[used-1]].BreakType == HardBreak {
			break
		}
	}
	return line, used
}
