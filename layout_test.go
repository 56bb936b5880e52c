package textflow

import (
	"sync"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textflow/fonts"
)

var (
	testFaceOnce sync.Once
	testFaceVal  *font.Face
)

func testFace(t *testing.T) *font.Face {
	t.Helper()
	testFaceOnce.Do(func() {
		face, err := fonts.ParseTTF(goregular.TTF)
		if err != nil {
			panic(err)
		}
		testFaceVal = face
	})
	return testFaceVal
}

// fixedShaper emits one glyph per rune with a constant advance, so
// positional assertions are exact. Hebrew runes are flagged RTL.
type fixedShaper struct {
	face *font.Face
	adv  float64
}

func (s fixedShaper) Shape(req ShapeRequest) ([]ShapedGlyph, error) {
	propsFor := func(i int) Properties {
		for _, r := range req.Runs {
			if i >= r.Start && i < r.End {
				return r.Props
			}
		}
		return DefaultProperties()
	}
	var out []ShapedGlyph
	for i, r := range req.Text {
		gid, _ := s.face.NominalGlyph(r)
		g := ShapedGlyph{
			Cluster:  i,
			GID:      gid,
			Face:     s.face,
			FontSize: propsFor(i).FontSize,
			RTL:      r >= 0x0590 && r <= 0x05FF,
			Vertical: req.Vertical,
		}
		if req.Vertical {
			g.YAdvance = -s.adv
		} else {
			g.XAdvance = s.adv
		}
		out = append(out, g)
	}
	return out, nil
}

// ligatureShaper shapes the whole text into a single glyph cluster,
// the way "fi" ligates in a real font.
type ligatureShaper struct {
	face *font.Face
	adv  float64
}

func (s ligatureShaper) Shape(req ShapeRequest) ([]ShapedGlyph, error) {
	gid, _ := s.face.NominalGlyph(req.Text[0])
	return []ShapedGlyph{{
		Cluster:  gid0Cluster,
		GID:      gid,
		Face:     s.face,
		FontSize: 12,
		XAdvance: s.adv,
	}}, nil
}

const gid0Cluster = 0

func fixedEngine(t *testing.T, adv float64) *Engine {
	face := testFace(t)
	return NewWithShaper(fonts.Single{Face: face}, fixedShaper{face: face, adv: adv})
}

func TestLayoutEmpty(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(nil)
	require.NotNil(t, res)
	assert.Empty(t, res.Characters)

	res = eng.Layout(&Node{})
	assert.Empty(t, res.Characters)
	assert.Empty(t, res.PlainText)
}

func TestLayoutSimple(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "AB"})

	require.Len(t, res.Characters, 2)
	assert.Equal(t, "AB", res.PlainText)

	a, b := res.Characters[0], res.Characters[1]
	assert.True(t, a.AnchoredChunk)
	assert.False(t, b.AnchoredChunk)
	assert.Equal(t, 0, a.PlainTextIndex)
	assert.Equal(t, 1, b.PlainTextIndex)
	assert.Equal(t, 0, a.VisualIndex)
	assert.Equal(t, 1, b.VisualIndex)

	// The baseline of the first chunk sits at the origin.
	assert.InDelta(t, 0, a.FinalPosition.X, 1e-9)
	assert.InDelta(t, 0, a.FinalPosition.Y, 1e-9)
	assert.InDelta(t, 10, b.FinalPosition.X, 1e-9)
	assert.InDelta(t, 0, b.FinalPosition.Y, 1e-9)
	assert.Equal(t, Pt(10, 0), a.Advance)

	require.Len(t, res.Lines, 1)
	assert.False(t, res.IsBidi)
}

func TestLayoutPlainTextIndexIncreasing(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "one two three"})

	prev := -1
	for _, cr := range res.Characters {
		if !cr.Addressable {
			continue
		}
		assert.Greater(t, cr.PlainTextIndex, prev)
		prev = cr.PlainTextIndex
	}
}

func TestLayoutCollapsedSpaces(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "a  b"})

	require.Len(t, res.Characters, 4)
	assert.True(t, res.Characters[1].Addressable)
	assert.False(t, res.Characters[2].Addressable, "second space collapses")
	assert.Equal(t, "a b", res.PlainText)

	// The collapsed character takes no space.
	assert.InDelta(t, 20, res.Characters[3].FinalPosition.X, 1e-9)
}

func TestLayoutTrailingHardBreak(t *testing.T) {
	props := Properties{SpaceCollapse: PreserveBreaks}
	props.Mark(PropSpaceCollapse)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "Hello\n", Properties: props})

	require.Len(t, res.Characters, 7, "six runes plus the synthetic entry")
	assert.Equal(t, "Hello\n", res.PlainText)

	nl := res.Characters[5]
	assert.Equal(t, HardBreak, nl.BreakType)

	dummy := res.Characters[6]
	assert.True(t, dummy.Addressable)
	assert.True(t, dummy.AnchoredChunk)
	assert.Equal(t, 6, dummy.PlainTextIndex)
	assert.Zero(t, dummy.Advance.X, "the synthetic entry has no inline advance")

	require.Len(t, res.Lines, 2, "the trailing break opens an empty line")

	pos, err := res.CursorPosForIndex(6)
	require.NoError(t, err)
	assert.True(t, pos.Synthetic)
	assert.Equal(t, 6, pos.Cluster)
}

func TestLayoutBidiFlag(t *testing.T) {
	eng := fixedEngine(t, 10)

	res := eng.Layout(&Node{Text: "ab"})
	assert.False(t, res.IsBidi)

	res = eng.Layout(&Node{Text: "abא"})
	assert.True(t, res.IsBidi)
	assert.True(t, res.Characters[2].Cursor.RTL)
}

func TestLayoutAnchorMiddle(t *testing.T) {
	props := Properties{Anchor: AnchorMiddle}
	props.Mark(PropAnchor)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{
		Text:       "AB",
		Properties: props,
		Transforms: []CharTransform{{X: Float(50)}},
	})

	require.Len(t, res.Characters, 2)
	// The 20pt extent is centered on x=50.
	assert.InDelta(t, 40, res.Characters[0].FinalPosition.X, 1e-9)
	assert.InDelta(t, 50, res.Characters[1].FinalPosition.X, 1e-9)
}

func TestLayoutAnchorEnd(t *testing.T) {
	props := Properties{Anchor: AnchorEnd}
	props.Mark(PropAnchor)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{
		Text:       "AB",
		Properties: props,
		Transforms: []CharTransform{{X: Float(50)}},
	})

	assert.InDelta(t, 30, res.Characters[0].FinalPosition.X, 1e-9)
	assert.InDelta(t, 40, res.Characters[1].FinalPosition.X, 1e-9)
}

func TestLayoutTextLengthSpacing(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{
		Text:       "aaaaa",
		TextLength: Float(90),
	})

	require.Len(t, res.Characters, 5)
	for i, cr := range res.Characters {
		assert.InDelta(t, float64(i)*20, cr.FinalPosition.X, 1e-9, "char %d", i)
		assert.True(t, cr.TextLengthApplied)
	}
	last := res.Characters[4]
	assert.InDelta(t, 90, last.FinalPosition.X+last.Advance.X, 1e-9,
		"the span ends exactly at textLength")
}

func TestLayoutTextLengthGlyphScaling(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{
		Text:         "aaaaa",
		TextLength:   Float(100),
		LengthAdjust: SpacingAndGlyphs,
	})

	for i, cr := range res.Characters {
		assert.InDelta(t, 20, cr.Advance.X, 1e-9, "char %d advance doubles", i)
		assert.InDelta(t, float64(i)*20, cr.FinalPosition.X, 1e-9)
	}
}

func TestLayoutTextLengthShiftsFollowers(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Children: []*Node{
		{Text: "aa", TextLength: Float(30)},
		{Text: "b"},
	}})

	require.Len(t, res.Characters, 3)
	assert.InDelta(t, 0, res.Characters[0].FinalPosition.X, 1e-9)
	assert.InDelta(t, 20, res.Characters[1].FinalPosition.X, 1e-9)
	assert.InDelta(t, 30, res.Characters[2].FinalPosition.X, 1e-9,
		"text after the stretched span moves by its delta")
}

func TestLayoutWrapping(t *testing.T) {
	props := Properties{InlineSize: Float(25)}
	props.Mark(PropInlineSize)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "aa aa", Properties: props})

	require.Len(t, res.Lines, 2)
	assert.True(t, res.Characters[2].Hidden, "the trailing space is hidden")

	first := res.Characters[0].FinalPosition
	second := res.Characters[3].FinalPosition
	assert.Greater(t, second.Y, first.Y, "second line sits below the first")
	assert.InDelta(t, first.X, second.X, 1e-9, "both lines start at the same x")
}

func TestLayoutOverflowWrap(t *testing.T) {
	props := Properties{InlineSize: Float(20)}
	props.Mark(PropInlineSize)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "aaaa", Properties: props})
	assert.Len(t, res.Lines, 1, "an unbreakable word overflows by default")

	props.OverflowWrap = OverflowWrapAnywhere
	props.Mark(PropOverflowWrap)
	res = eng.Layout(&Node{Text: "aaaa", Properties: props})
	assert.Len(t, res.Lines, 2)
}

func TestLayoutJustifyOpportunities(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "日本 a"})

	require.Len(t, res.Characters, 4)
	assert.True(t, res.Characters[0].JustifyBefore, "ideographs expand on both sides")
	assert.True(t, res.Characters[0].JustifyAfter)
	assert.True(t, res.Characters[1].JustifyBefore)
	assert.False(t, res.Characters[2].JustifyBefore, "spaces expand only after")
	assert.True(t, res.Characters[2].JustifyAfter)
	assert.False(t, res.Characters[3].JustifyBefore)
}

func TestLayoutLineBoxCapHeight(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "Aa"})

	require.Len(t, res.Lines, 1)
	line := res.Lines[0]
	assert.Greater(t, line.ExpectedLineTop, 0.0)
	assert.LessOrEqual(t, line.ExpectedLineTop, line.ActualLineTop,
		"cap height stays within the ascent")
}

func TestLayoutNoWrapIgnoresInlineSize(t *testing.T) {
	props := Properties{InlineSize: Float(25), TextWrap: NoWrap}
	props.Mark(PropInlineSize)
	props.Mark(PropTextWrap)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "aa aa", Properties: props})
	assert.Len(t, res.Lines, 1)
}

func TestLayoutLigatureCluster(t *testing.T) {
	face := testFace(t)
	eng := NewWithShaper(fonts.Single{Face: face}, ligatureShaper{face: face, adv: 20})
	res := eng.Layout(&Node{Text: "fi"})

	require.Len(t, res.Characters, 2)
	leader, middle := res.Characters[0], res.Characters[1]

	assert.False(t, leader.Middle)
	assert.True(t, middle.Middle)
	assert.True(t, middle.Hidden)
	assert.Equal(t, leader.FinalPosition.Add(leader.Advance), middle.FinalPosition)

	// Both graphemes stop inside the single cluster.
	assert.Equal(t, []int{1, 2}, leader.Cursor.GraphemeIndices)
	require.Len(t, leader.Cursor.Offsets, 2)
	assert.InDelta(t, 10, leader.Cursor.Offsets[0].X, 1e-9)
	assert.InDelta(t, 20, leader.Cursor.Offsets[1].X, 1e-9)
}

func TestLayoutTab(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "a\tb"})

	require.Len(t, res.Characters, 3)
	assert.InDelta(t, 80, res.Characters[1].Advance.X, 1e-9, "tab is 8 space advances")
	assert.InDelta(t, 90, res.Characters[2].FinalPosition.X, 1e-9)
}

func TestLayoutVertical(t *testing.T) {
	props := Properties{WritingMode: VerticalRL}
	props.Mark(PropWritingMode)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "ab", Properties: props})

	require.Len(t, res.Characters, 2)
	a, b := res.Characters[0], res.Characters[1]
	assert.Equal(t, Pt(0, 10), a.Advance)
	assert.InDelta(t, 0, a.FinalPosition.Y, 1e-9)
	assert.InDelta(t, 10, b.FinalPosition.Y, 1e-9)
	assert.InDelta(t, a.FinalPosition.X, b.FinalPosition.X, 1e-9)
}

func TestLayoutDecorationUnderline(t *testing.T) {
	props := Properties{Decoration: DecorationUnderline}
	props.Mark(PropDecoration)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "abc", Properties: props})

	require.Len(t, res.Decorations, 1)
	dec := res.Decorations[0]
	assert.Equal(t, DecorationUnderline, dec.Line)
	require.NotNil(t, dec.Path)
	assert.False(t, dec.Path.IsEmpty())
	assert.Greater(t, dec.Stroke.Width, 0.0)
	assert.Equal(t, Color{A: 1}, dec.Color, "decoration falls back to the fill color")
}

func TestLayoutDecorationMulti(t *testing.T) {
	props := Properties{Decoration: DecorationUnderline | DecorationLineThrough}
	props.Mark(PropDecoration)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "abc", Properties: props})
	assert.Len(t, res.Decorations, 2)
}

func TestLayoutTextPath(t *testing.T) {
	path := NewPath()
	path.MoveTo(0, 0)
	path.LineTo(100, 0)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Children: []*Node{
		{Text: "ab", TextPath: &TextPath{Path: path}},
	}})

	require.Len(t, res.Characters, 2)
	a, b := res.Characters[0], res.Characters[1]
	assert.InDelta(t, 0, a.FinalPosition.X, 1e-6)
	assert.InDelta(t, 0, a.FinalPosition.Y, 1e-6)
	assert.InDelta(t, 10, b.FinalPosition.X, 1e-6)
	assert.InDelta(t, 0, a.Rotate, 1e-9)
	assert.False(t, a.Hidden)
}

func TestLayoutTextPathStartOffset(t *testing.T) {
	path := NewPath()
	path.MoveTo(0, 0)
	path.LineTo(100, 0)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Children: []*Node{
		{Text: "ab", TextPath: &TextPath{Path: path, StartOffset: 30}},
	}})

	assert.InDelta(t, 30, res.Characters[0].FinalPosition.X, 1e-6)
}

func TestLayoutTextPathOverflowHidden(t *testing.T) {
	path := NewPath()
	path.MoveTo(0, 0)
	path.LineTo(15, 0)

	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Children: []*Node{
		{Text: "abc", TextPath: &TextPath{Path: path}},
	}})

	// The third character's midpoint falls past the open path's end.
	assert.False(t, res.Characters[0].Hidden)
	assert.True(t, res.Characters[2].Hidden)
}

func TestLayoutCursorNavigation(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "abc"})

	// One synthetic chunk-start position plus one per character.
	require.Len(t, res.CursorPositions, 4)
	require.Len(t, res.LogicalToVisualCursor, 4)

	pos, err := res.CursorPosForIndex(0)
	require.NoError(t, err)
	assert.True(t, pos.Synthetic)

	next, err := res.NextVisual(0, 1)
	require.NoError(t, err)
	assert.NotEqual(t, 0, next)

	_, err = res.NextVisual(99, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestLayoutCharacterAt(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "ab"})

	cr := res.CharacterAt(1)
	require.NotNil(t, cr)
	assert.Equal(t, 1, cr.PlainTextIndex)
	assert.Nil(t, res.CharacterAt(99))
}

func TestLayoutBounds(t *testing.T) {
	eng := fixedEngine(t, 10)
	res := eng.Layout(&Node{Text: "abc"})

	require.False(t, res.Bounds.IsEmpty())
	assert.Less(t, res.Bounds.Min.Y, 0.0, "ink extends above the baseline")
}

func TestLayoutRealShaper(t *testing.T) {
	face := testFace(t)
	eng := New(fonts.Single{Face: face})
	res := eng.Layout(&Node{Text: "Hello"})

	require.Len(t, res.Characters, 5)
	assert.Equal(t, "Hello", res.PlainText)

	prevX := -1.0
	for i, cr := range res.Characters {
		require.True(t, cr.Addressable)
		assert.Greater(t, cr.Advance.X, 0.0, "char %d", i)
		assert.Greater(t, cr.FinalPosition.X, prevX)
		prevX = cr.FinalPosition.X
	}
	require.Len(t, res.Lines, 1)
	assert.False(t, res.Bounds.IsEmpty())
}

func TestLayoutRealShaperMixedDirection(t *testing.T) {
	face := testFace(t)
	eng := New(fonts.Single{Face: face})
	res := eng.Layout(&Node{Text: "ab אב"})

	assert.True(t, res.IsBidi)
	assert.Equal(t, "ab אב", res.PlainText)
}

func TestLayoutLetterSpacing(t *testing.T) {
	spaced := Properties{LetterSpacing: Float(5)}
	spaced.Mark(PropLetterSpacing)

	face := testFace(t)
	eng := New(fonts.Single{Face: face})

	plain := eng.Layout(&Node{Text: "ab"})
	wide := eng.Layout(&Node{Text: "ab", Properties: spaced})

	require.Len(t, plain.Characters, 2)
	require.Len(t, wide.Characters, 2)
	assert.InDelta(t, plain.Characters[0].Advance.X+5, wide.Characters[0].Advance.X, 1e-6)
}
