package textflow

// Glyph is the payload of a laid-out character. Outline glyphs can be
// transformed in place by textLength stretching and text-on-path
// warping; other representations pass through untouched.
type Glyph interface {
	isGlyph()
}

// OutlineGlyph is a glyph rendered from a vector outline. The path is
// in local glyph space, in points, y growing downward; the character's
// FinalPosition and Rotate place it in the document.
type OutlineGlyph struct {
	Path *Path
}

func (OutlineGlyph) isGlyph() {}

// BitmapGlyph is a glyph backed by embedded raster data (color emoji
// fonts). The layout engine positions it but never transforms the
// pixel data.
type BitmapGlyph struct {
	Data   []byte
	Format string // "png" or "mono"
	Bounds Rect   // placement box in local glyph space
}

func (BitmapGlyph) isGlyph() {}

// CursorInfo carries the editing metadata of a cluster leader.
type CursorInfo struct {
	// RTL reports the shaped direction at this character.
	RTL bool

	// WordBoundary is set when a word boundary follows the cluster.
	WordBoundary bool

	// GraphemeIndices lists the plain-text indices, in logical order,
	// of the grapheme boundaries inside this cluster. A simple
	// character has exactly one entry, its own index plus one.
	GraphemeIndices []int

	// Offsets holds one inline offset per grapheme in the cluster,
	// interpolated across the cluster advance.
	Offsets []Point

	// Color and Background are the paint colors at this character,
	// carried through for caret and selection rendering.
	Color      Color
	Background Color
}

// CharacterResult is the per-character record threaded through every
// layout stage. The Characters slice of a [Result] holds one entry per
// rune of the collapsed text, plus at most one trailing synthetic
// entry after a final hard break.
type CharacterResult struct {
	// Addressable is false for collapsed or control characters that
	// take no part in layout.
	Addressable bool

	// Middle marks a non-leading member of a shaping cluster, such as
	// the tail of a ligature. Middle characters are hidden and borrow
	// geometry from their cluster leader.
	Middle bool

	// Hidden excludes the character from outline emission.
	Hidden bool

	// VisualIndex is the character's position in shaped visual order,
	// or -1 when the character produced no glyph of its own.
	VisualIndex int

	Glyph Glyph

	// Advance is the inline advance vector in points.
	Advance Point

	// CSSPosition is the algorithmic position before text-on-path.
	// FinalPosition includes every shift, anchoring and path bending.
	CSSPosition   Point
	FinalPosition Point

	// BaselineOffset accumulates baseline-shift and alignment-baseline
	// displacement for the character's span.
	BaselineOffset Point

	// InkBounds is the glyph ink box in local glyph space.
	// LayoutBox is the advance-and-line-height box used by decorations.
	InkBounds Rect
	LayoutBox Rect

	// Rotate is the character's rotation in radians, applied around
	// FinalPosition.
	Rotate float64

	BreakType BreakType
	LineStart LineEdgeBehaviour
	LineEnd   LineEdgeBehaviour

	// JustifyBefore and JustifyAfter flag justification opportunities.
	JustifyBefore bool
	JustifyAfter  bool

	Anchor    Anchor
	Direction Direction

	// AnchoredChunk marks the first character of an independently
	// anchored run.
	AnchoredChunk bool

	// TextLengthApplied marks characters already stretched by a
	// textLength pass, so overlapping spans do not stretch twice.
	TextLengthApplied bool

	// PlainTextIndex maps back to the collapsed plain text, or -1 for
	// the synthetic trailing entry.
	PlainTextIndex int

	// FontSize and decoration metrics resolved for this character's
	// span, in points.
	FontSize float64

	Cursor CursorInfo

	// face and metrics backing this character, set by the builder.
	face *faceMetrics
}

// InitialPosition returns the caret position before the character,
// accounting for shaped direction.
func (cr *CharacterResult) InitialPosition() Point {
	if cr.Cursor.RTL {
		return cr.FinalPosition.Add(cr.Advance)
	}
	return cr.FinalPosition
}

// LineChunk is one anchored run of characters on a line.
type LineChunk struct {
	// Indices into Result.Characters, in logical order.
	Indices []int

	// Length is the used inline extent of the chunk.
	Length float64

	// ConditionalHang counts trailing conditionally hung advance not
	// included in Length.
	ConditionalHang float64
}

// LineBox is one laid-out line.
type LineBox struct {
	Chunks []LineChunk

	// BaselineTop and BaselineBottom anchor text-top and text-bottom
	// alignment and decoration placement for the line.
	BaselineTop    Point
	BaselineBottom Point

	// ExpectedLineTop is the cap distance above the baseline used when
	// first-line offsets are applied in shape flow.
	ExpectedLineTop float64

	// ActualLineTop and ActualLineBottom are the measured ascent and
	// descent of the line's content.
	ActualLineTop    float64
	ActualLineBottom float64
}

// CursorPos addresses one caret position in the laid-out text.
type CursorPos struct {
	// Cluster indexes Result.Characters at the cluster leader.
	Cluster int

	// Index is the plain-text offset of the position.
	Index int

	// Offset is the grapheme offset inside the cluster, 0 for the
	// position before the cluster.
	Offset int

	// Synthetic marks positions inserted at chunk starts and after a
	// trailing hard break, which have no character of their own.
	Synthetic bool
}

// DecorationPath is one generated decoration line for a styled span.
type DecorationPath struct {
	Line   Decoration // exactly one of the line bits
	Path   *Path
	Stroke Stroke
	Color  Color

	node *Node // declaring node, used for text-path bending
}

// Result is the complete output of a layout pass.
type Result struct {
	// Characters holds one entry per rune of the collapsed text, in
	// logical order, plus at most one synthetic trailing entry.
	Characters []CharacterResult

	// PlainText is the collapsed text that Characters index into.
	PlainText string

	Lines []LineBox

	// Decorations lists generated underline, overline and line-through
	// geometry in document space.
	Decorations []DecorationPath

	// CursorPositions is ordered by logical plain-text position.
	// LogicalToVisualCursor maps an index in CursorPositions to the
	// visual traversal order used by caret navigation.
	CursorPositions       []CursorPos
	LogicalToVisualCursor []int

	// IsBidi is set when any character's shaped direction disagrees
	// with its declared direction property.
	IsBidi bool

	// Bounds is the union of all glyph ink in document space.
	Bounds Rect
}

// CharacterAt returns the character record for a plain-text index, or
// nil when no addressable character maps to it.
func (r *Result) CharacterAt(plainIndex int) *CharacterResult {
	for i := range r.Characters {
		if r.Characters[i].PlainTextIndex == plainIndex && r.Characters[i].Addressable {
			return &r.Characters[i]
		}
	}
	return nil
}

// InitialPosition returns the resolved start point of the text, the
// caret position before the first addressable character. For text on a
// path this is the mapped on-path start. Zero when the result is empty.
func (r *Result) InitialPosition() Point {
	for i := range r.Characters {
		if r.Characters[i].Addressable && !r.Characters[i].Hidden {
			return r.Characters[i].InitialPosition()
		}
	}
	return Point{}
}
