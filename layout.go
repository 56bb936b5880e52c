package textflow

import (
	"github.com/gogpu/textflow/fonts"
	"github.com/gogpu/textflow/segment"
)

// Engine runs the text layout pipeline. It is cheap to create and
// holds only the injected services plus a metrics cache; it is not
// safe for concurrent use.
type Engine struct {
	src    fonts.Source
	shaper Shaper

	// DPI sets the device resolution used for minimum decoration
	// thickness. Defaults to 72 (one point per pixel).
	DPI float64

	metricsCache map[faceKey]*faceMetrics
}

// New returns an Engine resolving fonts from src and shaping with the
// default HarfBuzz shaper.
func New(src fonts.Source) *Engine {
	return NewWithShaper(src, NewGoTextShaper(src))
}

// NewWithShaper returns an Engine with an explicit shaper, mainly for
// tests that stub out shaping.
func NewWithShaper(src fonts.Source, sh Shaper) *Engine {
	return &Engine{
		src:          src,
		shaper:       sh,
		DPI:          72,
		metricsCache: make(map[faceKey]*faceMetrics),
	}
}

// Layout lays out the styled text tree and returns the completed
// result. Layout is fail-soft: empty input, unresolvable fonts or a
// shaping failure produce an empty (or partial) Result, never an
// error, so callers can always render what exists.
func (e *Engine) Layout(root *Node) *Result {
	res := &Result{}
	if root == nil {
		return res
	}
	defaults := DefaultProperties()
	rootProps := root.Properties.Inherit(defaults)
	vertical := rootProps.WritingMode.IsVertical()
	wrapped := rootProps.InlineSize != nil || len(rootProps.ShapesInside) > 0

	c := collect(root, defaults)
	if len(c.text) == 0 {
		return res
	}
	logger().Debug("layout start", "runes", len(c.text), "wrapped", wrapped)

	bounds := segment.Analyze(string(c.text))
	collapsed := collapseMask(c.text, rootProps.SpaceCollapse)

	addressable := make([]bool, len(c.text))
	for _, run := range c.runs {
		for i := run.start; i < run.end; i++ {
			addressable[i] = !collapsed[i] && !(run.control && !wrapped)
		}
	}

	plainIndex := make([]int, len(c.text))
	var plain []rune
	for i := range c.text {
		plainIndex[i] = -1
		if addressable[i] {
			plainIndex[i] = len(plain)
			plain = append(plain, c.text[i])
		}
	}

	chars := e.prepareCharacters(c, bounds, addressable, plainIndex, rootProps)
	resolved := resolveTransforms(root, c, addressable, !vertical)

	glyphs, err := e.shaper.Shape(e.shapeRequest(c, chars, resolved, rootProps, vertical))
	if err != nil {
		logger().Warn("shaping failed", "err", err)
		return res
	}
	if len(glyphs) == 0 {
		return res
	}

	res.IsBidi = e.applyGlyphs(chars, glyphs)
	e.applyTabStops(c, chars)
	mergeMiddles(chars, bounds, plainIndex)
	markAnchoredChunks(chars, resolved)
	chars = appendHardBreakDummy(chars, len(plain), vertical)

	e.resolveBaselines(root, c, chars, defaults)

	var lines []LineBox
	if len(rootProps.ShapesInside) > 0 {
		lines = e.flowTextInShapes(chars, rootProps, vertical)
	} else {
		lines = e.breakLines(chars, rootProps, vertical)
	}
	e.alignLineBoxes(root, c, chars, lines, defaults)

	if !wrapped {
		applyRelativeOffsets(chars, resolved)
		e.applyTextLength(root, c, chars, vertical)
		applyAbsolutePositions(chars, resolved)
		applyAnchoring(chars, resolved, vertical)
		res.Decorations = e.computeDecorations(root, c, chars, defaults)
		e.applyTextPath(root, c, chars, res.Decorations, defaults)
	} else {
		res.Decorations = e.computeDecorations(root, c, chars, defaults)
	}

	res.Characters = chars
	res.PlainText = string(plain)
	res.Lines = lines
	e.buildCursorInfo(res, len(plain))
	logger().Debug("layout done", "characters", len(chars), "lines", len(lines))
	return res
}

// prepareCharacters allocates the character records and seeds them
// with everything known before shaping: addressability, break types,
// line-edge behaviour and style-derived fields.
func (e *Engine) prepareCharacters(c *collection, bounds segment.Boundaries, addressable []bool, plainIndex []int, rootProps Properties) []CharacterResult {
	chars := make([]CharacterResult, len(c.text))
	preserveBreaks := rootProps.SpaceCollapse != CollapseSpaces
	for _, run := range c.runs {
		props := run.props
		breakAll := wordBreakAllowed(props)
		for i := run.start; i < run.end; i++ {
			cr := &chars[i]
			cr.VisualIndex = -1
			cr.PlainTextIndex = plainIndex[i]
			cr.Addressable = addressable[i]
			cr.Anchor = props.Anchor
			cr.Direction = props.Direction
			cr.FontSize = props.FontSize
			cr.Cursor.Color = props.Fill
			cr.Cursor.Background = props.Background

			r := c.text[i]
			switch {
			case isSegmentBreak(r):
				// Collapsed segment breaks act as spaces and only
				// offer a break opportunity.
				if preserveBreaks {
					cr.BreakType = HardBreak
				} else {
					cr.BreakType = SoftBreak
				}
			case bounds.Line[i] == segment.LineMandatory:
				cr.BreakType = HardBreak
			case bounds.Line[i] == segment.LineAllowed:
				cr.BreakType = SoftBreak
			case breakAll && bounds.Grapheme[i]:
				cr.BreakType = SoftBreak
			}
			cr.LineStart, cr.LineEnd = lineEdgeBehaviour(r, props.HangingPunctuation)
			if i < len(bounds.Word) && bounds.Word[i] {
				cr.Cursor.WordBoundary = true
				if isCollapsibleSpace(r) {
					cr.JustifyAfter = true
				}
			}
			if isJustifyIdeograph(r) {
				cr.JustifyBefore = true
				cr.JustifyAfter = true
			}
		}
	}
	return chars
}

// shapeRequest assembles the single shaping pass over the flattened
// text. Segment breaks are fed to the shaper as plain spaces so the
// bidi algorithm does not treat them as paragraph separators, and tabs
// shape as spaces with their advance fixed up afterwards.
func (e *Engine) shapeRequest(c *collection, chars []CharacterResult, resolved []resolvedTransform, rootProps Properties, vertical bool) ShapeRequest {
	text := make([]rune, len(c.text))
	copy(text, c.text)
	for i, r := range text {
		if isSegmentBreak(r) || r == '\t' {
			text[i] = ' '
		}
	}
	var runs []ShapeRun
	for _, run := range c.runs {
		runs = append(runs, ShapeRun{Start: run.start, End: run.end, Props: run.props})
	}
	var chunkStarts []int
	for i := range resolved {
		if resolved[i].newChunk {
			chunkStarts = append(chunkStarts, i)
		}
	}
	return ShapeRequest{
		Text:        text,
		Direction:   rootProps.Direction,
		Vertical:    vertical,
		Runs:        runs,
		ChunkStarts: chunkStarts,
	}
}

// applyTabStops widens tab characters to the tab-size multiple of
// their shaped space advance.
func (e *Engine) applyTabStops(c *collection, chars []CharacterResult) {
	for i, r := range c.text {
		if r != '\t' || !chars[i].Addressable {
			continue
		}
		size := c.propsAt(i).TabSize
		if size > 0 {
			chars[i].Advance = chars[i].Advance.Mul(size)
		}
	}
}

// markAnchoredChunks flags the first character of every anchored
// chunk. A flag landing on a mid-cluster character defers to the next
// cluster leader.
func markAnchoredChunks(chars []CharacterResult, resolved []resolvedTransform) {
	pending := false
	first := true
	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable {
			continue
		}
		starts := i < len(resolved) && resolved[i].newChunk
		if cr.Middle {
			if starts {
				pending = true
			}
			continue
		}
		if starts || pending || first {
			cr.AnchoredChunk = true
			pending = false
		}
		first = false
	}
}
