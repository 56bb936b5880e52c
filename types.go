package textflow

// WritingMode selects the block-flow direction of the text.
type WritingMode int

const (
	// HorizontalTB lays lines out top to bottom, text running horizontally.
	HorizontalTB WritingMode = iota
	// VerticalRL lays lines out right to left, text running vertically.
	VerticalRL
	// VerticalLR lays lines out left to right, text running vertically.
	VerticalLR
)

func (m WritingMode) String() string {
	switch m {
	case HorizontalTB:
		return "horizontal-tb"
	case VerticalRL:
		return "vertical-rl"
	case VerticalLR:
		return "vertical-lr"
	}
	return "unknown"
}

// IsVertical reports whether the writing mode flows text vertically.
func (m WritingMode) IsVertical() bool { return m != HorizontalTB }

// Direction is the inline base direction.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// UnicodeBidi controls bidi embedding and isolation for a span.
type UnicodeBidi int

const (
	BidiNormal UnicodeBidi = iota
	BidiEmbed
	BidiOverride
	BidiIsolate
	BidiIsolateOverride
	BidiPlainText
)

func (b UnicodeBidi) String() string {
	switch b {
	case BidiNormal:
		return "normal"
	case BidiEmbed:
		return "embed"
	case BidiOverride:
		return "bidi-override"
	case BidiIsolate:
		return "isolate"
	case BidiIsolateOverride:
		return "isolate-override"
	case BidiPlainText:
		return "plaintext"
	}
	return "unknown"
}

// Anchor positions a text chunk relative to its anchor point.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	}
	return "unknown"
}

// BreakType classifies the line-break opportunity after a character.
type BreakType int

const (
	NoBreak BreakType = iota
	SoftBreak
	HardBreak
)

func (t BreakType) String() string {
	switch t {
	case NoBreak:
		return "no-break"
	case SoftBreak:
		return "soft-break"
	case HardBreak:
		return "hard-break"
	}
	return "unknown"
}

// LineEdgeBehaviour describes what a character does at a line edge.
type LineEdgeBehaviour int

const (
	// NoChange characters keep their advance at line edges.
	NoChange LineEdgeBehaviour = iota
	// Collapse characters lose their advance at line starts and ends.
	Collapse
	// HangBehaviour characters hang into the margin unconditionally.
	HangBehaviour
	// ConditionallyHang characters hang only when the line overflows.
	ConditionallyHang
	// ForceHang characters always hang and do not count toward the line width.
	ForceHang
)

func (b LineEdgeBehaviour) String() string {
	switch b {
	case NoChange:
		return "no-change"
	case Collapse:
		return "collapse"
	case HangBehaviour:
		return "hang"
	case ConditionallyHang:
		return "conditionally-hang"
	case ForceHang:
		return "force-hang"
	}
	return "unknown"
}

// Baseline names a baseline in a font's baseline table.
type Baseline int

const (
	BaselineAuto Baseline = iota
	BaselineAlphabetic
	BaselineIdeographic
	BaselineCentral
	BaselineHanging
	BaselineMathematical
	BaselineMiddle
	BaselineTextTop
	BaselineTextBottom
	BaselineDominant
)

func (b Baseline) String() string {
	switch b {
	case BaselineAuto:
		return "auto"
	case BaselineAlphabetic:
		return "alphabetic"
	case BaselineIdeographic:
		return "ideographic"
	case BaselineCentral:
		return "central"
	case BaselineHanging:
		return "hanging"
	case BaselineMathematical:
		return "mathematical"
	case BaselineMiddle:
		return "middle"
	case BaselineTextTop:
		return "text-top"
	case BaselineTextBottom:
		return "text-bottom"
	case BaselineDominant:
		return "dominant"
	}
	return "unknown"
}

// BaselineShiftMode selects how baseline-shift displaces a span.
type BaselineShiftMode int

const (
	ShiftNone BaselineShiftMode = iota
	ShiftSub
	ShiftSuper
	ShiftLength
)

func (m BaselineShiftMode) String() string {
	switch m {
	case ShiftNone:
		return "none"
	case ShiftSub:
		return "sub"
	case ShiftSuper:
		return "super"
	case ShiftLength:
		return "length"
	}
	return "unknown"
}

// Decoration is a bitmask of text decoration lines.
type Decoration int

const (
	DecorationNone        Decoration = 0
	DecorationUnderline   Decoration = 1 << iota
	DecorationOverline
	DecorationLineThrough
)

// DecorationStyle selects the stroke style of decoration lines.
type DecorationStyle int

const (
	Solid DecorationStyle = iota
	Double
	Dotted
	Dashed
	Wavy
)

func (s DecorationStyle) String() string {
	switch s {
	case Solid:
		return "solid"
	case Double:
		return "double"
	case Dotted:
		return "dotted"
	case Dashed:
		return "dashed"
	case Wavy:
		return "wavy"
	}
	return "unknown"
}

// UnderlinePosition selects where the underline is drawn.
type UnderlinePosition int

const (
	// UnderlineAuto places the underline at the font's underline offset.
	UnderlineAuto UnderlinePosition = iota
	// UnderlineUnder places the underline below the ink bottom.
	UnderlineUnder
	// UnderlineLeft places a vertical underline on the left side.
	UnderlineLeft
	// UnderlineRight places a vertical underline on the right side.
	UnderlineRight
)

func (p UnderlinePosition) String() string {
	switch p {
	case UnderlineAuto:
		return "auto"
	case UnderlineUnder:
		return "under"
	case UnderlineLeft:
		return "left"
	case UnderlineRight:
		return "right"
	}
	return "unknown"
}

// TextWrap selects the wrapping strategy when an inline-size is set.
type TextWrap int

const (
	Wrap TextWrap = iota
	NoWrap
	Balance
	Pretty
)

func (w TextWrap) String() string {
	switch w {
	case Wrap:
		return "wrap"
	case NoWrap:
		return "nowrap"
	case Balance:
		return "balance"
	case Pretty:
		return "pretty"
	}
	return "unknown"
}

// SpaceCollapse selects the white-space collapsing behaviour.
type SpaceCollapse int

const (
	CollapseSpaces SpaceCollapse = iota
	PreserveSpaces
	PreserveBreaks
	BreakSpaces
)

func (c SpaceCollapse) String() string {
	switch c {
	case CollapseSpaces:
		return "collapse"
	case PreserveSpaces:
		return "preserve"
	case PreserveBreaks:
		return "preserve-breaks"
	case BreakSpaces:
		return "break-spaces"
	}
	return "unknown"
}

// WordBreakMode tunes where breaks are allowed inside words.
type WordBreakMode int

const (
	WordBreakNormal WordBreakMode = iota
	WordBreakKeepAll
	WordBreakAll
)

func (m WordBreakMode) String() string {
	switch m {
	case WordBreakNormal:
		return "normal"
	case WordBreakKeepAll:
		return "keep-all"
	case WordBreakAll:
		return "break-all"
	}
	return "unknown"
}

// LineBreakMode tunes the strictness of the line-breaking rules.
type LineBreakMode int

const (
	LineBreakAuto LineBreakMode = iota
	LineBreakLoose
	LineBreakNormal
	LineBreakStrict
	LineBreakAnywhere
)

func (m LineBreakMode) String() string {
	switch m {
	case LineBreakAuto:
		return "auto"
	case LineBreakLoose:
		return "loose"
	case LineBreakNormal:
		return "normal"
	case LineBreakStrict:
		return "strict"
	case LineBreakAnywhere:
		return "anywhere"
	}
	return "unknown"
}

// OverflowWrap allows emergency breaks inside otherwise unbreakable words.
type OverflowWrap int

const (
	OverflowWrapNormal OverflowWrap = iota
	OverflowWrapBreakWord
	OverflowWrapAnywhere
)

func (w OverflowWrap) String() string {
	switch w {
	case OverflowWrapNormal:
		return "normal"
	case OverflowWrapBreakWord:
		return "break-word"
	case OverflowWrapAnywhere:
		return "anywhere"
	}
	return "unknown"
}

// HangingPunctuation is a bitmask of hanging punctuation positions.
type HangingPunctuation int

const (
	HangFirst HangingPunctuation = 1 << iota
	HangLast
	HangEnd
	HangForce
)

// LengthAdjust selects how textLength distributes its correction.
type LengthAdjust int

const (
	// Spacing adjusts only the gaps between characters.
	Spacing LengthAdjust = iota
	// SpacingAndGlyphs also scales the glyphs themselves.
	SpacingAndGlyphs
)

func (a LengthAdjust) String() string {
	if a == SpacingAndGlyphs {
		return "spacingAndGlyphs"
	}
	return "spacing"
}

// TextPathMethod selects how glyphs are fitted to a text path.
type TextPathMethod int

const (
	// Align rotates each glyph to the path tangent at its midpoint.
	Align TextPathMethod = iota
	// Stretch warps glyph outlines onto the path.
	Stretch
)

func (m TextPathMethod) String() string {
	if m == Stretch {
		return "stretch"
	}
	return "align"
}

// TextPathSide selects which side of the path the text runs on.
type TextPathSide int

const (
	SideLeft TextPathSide = iota
	SideRight
)

func (s TextPathSide) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// TextTransform selects case transformation applied before shaping.
type TextTransform int

const (
	TransformNone TextTransform = iota
	TransformUppercase
	TransformLowercase
	TransformCapitalize
)

func (t TextTransform) String() string {
	switch t {
	case TransformNone:
		return "none"
	case TransformUppercase:
		return "uppercase"
	case TransformLowercase:
		return "lowercase"
	case TransformCapitalize:
		return "capitalize"
	}
	return "unknown"
}
