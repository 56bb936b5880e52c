package textflow

// PropID identifies one CSS text property for explicit-set tracking.
type PropID uint

const (
	PropFontFamilies PropID = iota
	PropFontSize
	PropFontWeight
	PropFontStyle
	PropFontStretch
	PropFontFeatures
	PropLanguage
	PropWritingMode
	PropDirection
	PropUnicodeBidi
	PropAnchor
	PropDominantBaseline
	PropAlignmentBaseline
	PropBaselineShift
	PropLetterSpacing
	PropWordSpacing
	PropTextTransform
	PropSpaceCollapse
	PropTextWrap
	PropWordBreak
	PropLineBreak
	PropOverflowWrap
	PropHangingPunctuation
	PropTabSize
	PropDecoration
	PropDecorationStyle
	PropDecorationColor
	PropUnderlinePosition
	PropInlineSize
	PropFill
	PropBackground
	numProps
)

// Properties is the resolved set of CSS text properties for a node.
// The Set bitmask records which properties the node specified itself;
// everything else inherits from the parent via [Properties.Inherit].
type Properties struct {
	Set uint64

	FontFamilies []string
	FontSize     float64
	FontWeight   float64 // CSS weight, 100..900
	FontStyle    FontStyle
	FontStretch  float64 // percent, 100 is normal
	FontFeatures []string
	Language     string

	WritingMode WritingMode
	Direction   Direction
	UnicodeBidi UnicodeBidi
	Anchor      Anchor

	DominantBaseline   Baseline
	AlignmentBaseline  Baseline
	BaselineShiftMode  BaselineShiftMode
	BaselineShiftValue float64

	// LetterSpacing and WordSpacing are extra advances in points. Nil
	// means auto (no extra spacing).
	LetterSpacing *float64
	WordSpacing   *float64

	TextTransform      TextTransform
	SpaceCollapse      SpaceCollapse
	TextWrap           TextWrap
	WordBreak          WordBreakMode
	LineBreak          LineBreakMode
	OverflowWrap       OverflowWrap
	HangingPunctuation HangingPunctuation
	TabSize            float64 // in advance widths of the space glyph

	Decoration        Decoration
	DecorationStyle   DecorationStyle
	DecorationColor   Color
	UnderlinePosition UnderlinePosition

	// InlineSize enables wrapping at the given length. Nil means auto
	// (no wrapping, SVG 1.1 positioning applies).
	InlineSize *float64

	// ShapesInside flows wrapped text into these regions instead of a
	// plain inline-size box. ShapesSubtract carves regions out.
	ShapesInside   []*Path
	ShapesSubtract []*Path

	// Fill and Background are the text paint colors, reported through
	// CursorInfo so editors can paint carets and selections
	// consistently with the rendered text.
	Fill       Color
	Background Color
}

// FontStyle is the CSS font-style.
type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

func (s FontStyle) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return "unknown"
}

// DefaultProperties returns the initial property values used for the
// root of a layout when the root node leaves them unset.
func DefaultProperties() Properties {
	return Properties{
		FontFamilies: []string{"sans-serif"},
		FontSize:     12,
		FontWeight:   400,
		FontStretch:  100,
		TabSize:      8,
		Fill:         Color{A: 1},
	}
}

// Has reports whether the node set the property explicitly.
func (p *Properties) Has(id PropID) bool { return p.Set&(1<<id) != 0 }

// Mark records the property as explicitly set.
func (p *Properties) Mark(id PropID) { p.Set |= 1 << id }

// Inherit returns the effective properties for a child with own
// properties p under parent properties parent. Inherited values are
// copied for every property the child did not set itself. Decoration
// lines accumulate instead of replacing, matching CSS propagation.
func (p Properties) Inherit(parent Properties) Properties {
	out := p
	if !p.Has(PropFontFamilies) {
		out.FontFamilies = parent.FontFamilies
	}
	if !p.Has(PropFontSize) {
		out.FontSize = parent.FontSize
	}
	if !p.Has(PropFontWeight) {
		out.FontWeight = parent.FontWeight
	}
	if !p.Has(PropFontStyle) {
		out.FontStyle = parent.FontStyle
	}
	if !p.Has(PropFontStretch) {
		out.FontStretch = parent.FontStretch
	}
	if !p.Has(PropFontFeatures) {
		out.FontFeatures = parent.FontFeatures
	}
	if !p.Has(PropLanguage) {
		out.Language = parent.Language
	}
	if !p.Has(PropWritingMode) {
		out.WritingMode = parent.WritingMode
	}
	if !p.Has(PropDirection) {
		out.Direction = parent.Direction
	}
	// unicode-bidi does not inherit.
	if !p.Has(PropAnchor) {
		out.Anchor = parent.Anchor
	}
	if !p.Has(PropDominantBaseline) {
		out.DominantBaseline = parent.DominantBaseline
	}
	// alignment-baseline and baseline-shift do not inherit.
	if !p.Has(PropLetterSpacing) {
		out.LetterSpacing = parent.LetterSpacing
	}
	if !p.Has(PropWordSpacing) {
		out.WordSpacing = parent.WordSpacing
	}
	if !p.Has(PropTextTransform) {
		out.TextTransform = parent.TextTransform
	}
	if !p.Has(PropSpaceCollapse) {
		out.SpaceCollapse = parent.SpaceCollapse
	}
	if !p.Has(PropTextWrap) {
		out.TextWrap = parent.TextWrap
	}
	if !p.Has(PropWordBreak) {
		out.WordBreak = parent.WordBreak
	}
	if !p.Has(PropLineBreak) {
		out.LineBreak = parent.LineBreak
	}
	if !p.Has(PropOverflowWrap) {
		out.OverflowWrap = parent.OverflowWrap
	}
	if !p.Has(PropHangingPunctuation) {
		out.HangingPunctuation = parent.HangingPunctuation
	}
	if !p.Has(PropTabSize) {
		out.TabSize = parent.TabSize
	}
	if !p.Has(PropDecoration) {
		out.Decoration = parent.Decoration
	} else {
		out.Decoration |= parent.Decoration
	}
	if !p.Has(PropDecorationStyle) {
		out.DecorationStyle = parent.DecorationStyle
	}
	if !p.Has(PropDecorationColor) {
		out.DecorationColor = parent.DecorationColor
	}
	if !p.Has(PropUnderlinePosition) {
		out.UnderlinePosition = parent.UnderlinePosition
	}
	// inline-size and shapes apply to the root only, no inheritance.
	if !p.Has(PropFill) {
		out.Fill = parent.Fill
	}
	if !p.Has(PropBackground) {
		out.Background = parent.Background
	}
	return out
}
