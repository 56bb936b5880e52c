package textflow

import (
	"github.com/go-text/typesetting/font"
)

// faceMetrics caches the resolved metrics of one face at one size.
// All values are in points. Vertical measures follow document space,
// so offsets above the baseline are negative.
type faceMetrics struct {
	face  *font.Face
	size  float64
	scale float64

	ascent  float64 // positive distance above the baseline
	descent float64 // positive distance below the baseline
	lineGap float64

	xHeight   float64
	capHeight float64

	underlineOffset    float64 // y-down offset from baseline
	underlineThickness float64
	strikeOffset       float64
	strikeThickness    float64

	superOffset Point // baseline-shift vector for super, y-down
	subOffset   Point

	baselines map[Baseline]float64 // y-down offset from alphabetic
}

type faceKey struct {
	face *font.Face
	size float64
}

// metricsFor returns cached metrics for a face at a size, deriving
// them once per pass.
func (e *Engine) metricsFor(face *font.Face, size float64) *faceMetrics {
	key := faceKey{face, size}
	if fm, ok := e.metricsCache[key]; ok {
		return fm
	}
	fm := newFaceMetrics(face, size)
	e.metricsCache[key] = fm
	return fm
}

func newFaceMetrics(face *font.Face, size float64) *faceMetrics {
	fm := &faceMetrics{face: face, size: size}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	fm.scale = size / upem

	if ext, ok := face.FontHExtents(); ok {
		fm.ascent = float64(ext.Ascender) * fm.scale
		fm.descent = -float64(ext.Descender) * fm.scale
	} else {
		fm.ascent = size * 0.8
		fm.descent = size * 0.2
	}
	if ext, ok := face.FontHExtents(); ok {
		fm.lineGap = float64(ext.LineGap) * fm.scale
	}

	metric := func(m font.LineMetric, fallback float64) float64 {
		if v := face.LineMetric(m); v != 0 {
			return float64(v) * fm.scale
		}
		return fallback
	}
	fm.xHeight = metric(font.XHeight, size*0.5)
	fm.capHeight = metric(font.CapHeight, size*0.7)
	// Underline position is reported y-up; flip it. Fallbacks follow
	// common synthesized values.
	fm.underlineOffset = -metric(font.UnderlinePosition, -size*0.1)
	fm.underlineThickness = metric(font.UnderlineThickness, size*0.075)
	fm.strikeOffset = -metric(font.StrikethroughPosition, fm.xHeight/2)
	fm.strikeThickness = metric(font.StrikethroughThickness, fm.underlineThickness)

	// The OS/2 superscript Y offset is not exposed through LineMetric,
	// only the superscript em size. Derive the raise from it, or from
	// the em when the table is absent.
	superX := metric(font.SuperscriptEmXOffset, 0)
	superY := metric(font.SuperscriptEmYSize, size*0.7) * 0.5
	subX := metric(font.SubscriptEmXOffset, 0)
	subY := metric(font.SubscriptEmYOffset, size*0.2)
	fm.superOffset = Pt(superX, -superY)
	fm.subOffset = Pt(subX, subY)

	// The baseline table is synthesized from the extents; offsets are
	// y-down relative to the alphabetic baseline.
	fm.baselines = map[Baseline]float64{
		BaselineAlphabetic:   0,
		BaselineIdeographic:  fm.descent,
		BaselineCentral:      -(fm.ascent - fm.descent) / 2,
		BaselineMiddle:       -fm.xHeight / 2,
		BaselineHanging:      -fm.ascent * 0.8,
		BaselineMathematical: -fm.ascent * 0.5,
	}
	return fm
}

// baseline returns the y-down offset of a named baseline, rescaled to
// a possibly different font size.
func (fm *faceMetrics) baseline(b Baseline, atSize float64) float64 {
	v := fm.baselines[b]
	if fm.size != 0 && atSize != fm.size {
		v *= atSize / fm.size
	}
	return v
}

// lineHeight returns ascent + descent + line gap.
func (fm *faceMetrics) lineHeight() float64 {
	return fm.ascent + fm.descent + fm.lineGap
}

// resolveBaselines walks the tree once, computing baseline-shift
// vectors and alignment-baseline deltas per span and accumulating them
// into every character's BaselineOffset. It also assigns each
// character its layout box from the span's metrics.
func (e *Engine) resolveBaselines(root *Node, c *collection, chars []CharacterResult, defaults Properties) {
	rootProps := root.Properties.Inherit(defaults)
	vertical := rootProps.WritingMode.IsVertical()
	e.resolveBaselinesNode(root, c, chars, rootProps, Point{}, vertical)

	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable || cr.face == nil {
			continue
		}
		fm := cr.face
		if vertical {
			half := fm.size / 2
			cr.LayoutBox = Rect{
				Min: Pt(-half, 0),
				Max: Pt(half, cr.Advance.Y),
			}
		} else {
			cr.LayoutBox = Rect{
				Min: Pt(0, -fm.ascent),
				Max: Pt(cr.Advance.X, fm.descent),
			}
		}
	}
}

func (e *Engine) resolveBaselinesNode(n *Node, c *collection, chars []CharacterResult, props Properties, shift Point, vertical bool) {
	sp := c.spans[n]
	fm := firstFaceIn(chars, sp)

	if fm != nil {
		switch props.BaselineShiftMode {
		case ShiftSuper:
			v := fm.superOffset
			if vertical {
				v = v.Rotate(halfPi)
			}
			shift = shift.Add(v)
		case ShiftSub:
			v := fm.subOffset
			if vertical {
				v = v.Rotate(halfPi)
			}
			shift = shift.Add(v)
		case ShiftLength:
			if vertical {
				shift = shift.Add(Pt(props.BaselineShiftValue, 0))
			} else {
				shift = shift.Add(Pt(0, -props.BaselineShiftValue))
			}
		}
	}

	// Alignment-baseline displaces the whole subtree so its named
	// baseline coincides with the parent's dominant baseline; it folds
	// into the accumulated shift like baseline-shift does. text-top and
	// text-bottom need line extents and are handled after breaking.
	align := props.AlignmentBaseline
	if align != BaselineAuto && align != BaselineTextTop && align != BaselineTextBottom && fm != nil {
		ref := align
		if ref == BaselineDominant {
			ref = props.DominantBaseline
		}
		delta := fm.baseline(props.DominantBaseline, props.FontSize) - fm.baseline(ref, props.FontSize)
		if delta != 0 {
			if vertical {
				shift = shift.Add(Pt(delta, 0))
			} else {
				shift = shift.Add(Pt(0, delta))
			}
		}
	}

	for _, child := range n.Children {
		e.resolveBaselinesNode(child, c, chars, child.Properties.Inherit(props), shift, vertical)
	}

	if n.IsLeaf() && shift != (Point{}) {
		for i := sp.start; i < sp.end; i++ {
			if chars[i].Addressable {
				chars[i].BaselineOffset = chars[i].BaselineOffset.Add(shift)
			}
		}
	}
}

const halfPi = 1.5707963267948966

func firstFaceIn(chars []CharacterResult, sp span) *faceMetrics {
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		if chars[i].face != nil {
			return chars[i].face
		}
	}
	return nil
}

// alignLineBoxes applies text-top and text-bottom alignment once the
// lines exist, shifting whole spans so their visual top or bottom
// meets the owning line's anchor. FinalPosition is refreshed from the
// shifted CSSPosition.
func (e *Engine) alignLineBoxes(root *Node, c *collection, chars []CharacterResult, lines []LineBox, defaults Properties) {
	rootProps := root.Properties.Inherit(defaults)
	vertical := rootProps.WritingMode.IsVertical()
	var walk func(n *Node, props Properties)
	walk = func(n *Node, props Properties) {
		align := props.AlignmentBaseline
		if align == BaselineTextTop || align == BaselineTextBottom {
			sp := c.spans[n]
			fm := firstFaceIn(chars, sp)
			first := firstAddressable(chars, sp)
			if fm != nil && first >= 0 {
				line := lineContaining(lines, first)
				if line != nil {
					var shift Point
					base := chars[first].CSSPosition
					if align == BaselineTextTop {
						target := line.BaselineTop
						if vertical {
							shift = Pt(target.X-(base.X+fm.ascent), 0)
						} else {
							shift = Pt(0, target.Y-(base.Y-fm.ascent))
						}
					} else {
						target := line.BaselineBottom
						if vertical {
							shift = Pt(target.X-(base.X-fm.descent), 0)
						} else {
							shift = Pt(0, target.Y-(base.Y+fm.descent))
						}
					}
					for i := sp.start; i < sp.end; i++ {
						if chars[i].Addressable {
							chars[i].CSSPosition = chars[i].CSSPosition.Add(shift)
						}
					}
				}
			}
		}
		for _, child := range n.Children {
			walk(child, child.Properties.Inherit(props))
		}
	}
	walk(root, rootProps)

	for i := range chars {
		if chars[i].Addressable {
			chars[i].FinalPosition = chars[i].CSSPosition
		}
	}
}

func firstAddressable(chars []CharacterResult, sp span) int {
	for i := sp.start; i < sp.end && i < len(chars); i++ {
		if chars[i].Addressable {
			return i
		}
	}
	return -1
}

func lineContaining(lines []LineBox, idx int) *LineBox {
	for l := range lines {
		for _, chunk := range lines[l].Chunks {
			for _, i := range chunk.Indices {
				if i == idx {
					return &lines[l]
				}
			}
		}
	}
	return nil
}
