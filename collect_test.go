package textflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFlattensTree(t *testing.T) {
	bold := Properties{FontWeight: 700}
	bold.Mark(PropFontWeight)

	root := &Node{Children: []*Node{
		{Text: "Hello "},
		{Text: "world", Properties: bold},
	}}
	c := collect(root, DefaultProperties())

	assert.Equal(t, "Hello world", string(c.text))
	require.Len(t, c.runs, 2)
	assert.Equal(t, 400.0, c.runs[0].props.FontWeight)
	assert.Equal(t, 700.0, c.runs[1].props.FontWeight)

	sp := c.spans[root.Children[1]]
	assert.Equal(t, 6, sp.start)
	assert.Equal(t, 11, sp.end)
	assert.Equal(t, 11, c.spans[root].end)
}

func TestCollectInheritance(t *testing.T) {
	big := Properties{FontSize: 20}
	big.Mark(PropFontSize)

	root := &Node{Properties: big, Children: []*Node{{Text: "x"}}}
	c := collect(root, DefaultProperties())

	require.Len(t, c.runs, 1)
	assert.Equal(t, 20.0, c.runs[0].props.FontSize)
}

func TestCollectBidiControls(t *testing.T) {
	iso := Properties{UnicodeBidi: BidiIsolate, Direction: DirectionRTL}
	iso.Mark(PropUnicodeBidi)
	iso.Mark(PropDirection)

	root := &Node{Children: []*Node{
		{Text: "ab"},
		{Text: "שלום", Properties: iso},
	}}
	c := collect(root, DefaultProperties())

	text := string(c.text)
	assert.Contains(t, text, "⁧", "RLI inserted")
	assert.Contains(t, text, "⁩", "PDI inserted")

	// Control runs are flagged so layout can skip them.
	var controls int
	for _, run := range c.runs {
		if run.control {
			controls += run.end - run.start
		}
	}
	assert.Equal(t, 2, controls)
}

func TestCollectTextTransform(t *testing.T) {
	up := Properties{TextTransform: TransformUppercase}
	up.Mark(PropTextTransform)

	root := &Node{Text: "abc", Properties: up}
	c := collect(root, DefaultProperties())
	assert.Equal(t, "ABC", string(c.text))
}

func TestCollectPropsAt(t *testing.T) {
	root := &Node{Text: "ab"}
	c := collect(root, DefaultProperties())
	assert.Equal(t, 12.0, c.propsAt(0).FontSize)
	assert.Equal(t, 12.0, c.propsAt(1).FontSize)
	assert.Nil(t, c.runAt(99))
}

func TestResolveTransforms(t *testing.T) {
	root := &Node{
		Text: "abcd",
		Transforms: []CharTransform{
			{X: Float(5)},
			{DX: Float(2), Rotate: Float(45)},
		},
	}
	c := collect(root, DefaultProperties())
	addr := []bool{true, true, true, true}
	resolved := resolveTransforms(root, c, addr, true)

	require.Len(t, resolved, 4)
	require.NotNil(t, resolved[0].x)
	assert.Equal(t, 5.0, *resolved[0].x)
	assert.True(t, resolved[0].newChunk)

	require.NotNil(t, resolved[1].dx)
	assert.Equal(t, 2.0, *resolved[1].dx)
	assert.False(t, resolved[1].newChunk)

	// Rotation carries forward past the end of the list.
	require.NotNil(t, resolved[3].rotate)
	assert.Equal(t, 45.0, *resolved[3].rotate)
}

func TestResolveTransformsSkipsNonAddressable(t *testing.T) {
	root := &Node{
		Text:       "a b",
		Transforms: []CharTransform{{X: Float(1)}, {X: Float(2)}},
	}
	c := collect(root, DefaultProperties())
	addr := []bool{true, false, true}
	resolved := resolveTransforms(root, c, addr, true)

	// Entry 1 lands on the second addressable character, skipping the
	// collapsed space.
	require.NotNil(t, resolved[2].x)
	assert.Equal(t, 2.0, *resolved[2].x)
	assert.Nil(t, resolved[1].x)
}

func TestResolveTransformsFirstCharOrigin(t *testing.T) {
	root := &Node{Text: "ab"}
	c := collect(root, DefaultProperties())
	resolved := resolveTransforms(root, c, []bool{true, true}, true)

	require.NotNil(t, resolved[0].x)
	assert.Equal(t, 0.0, *resolved[0].x)
	require.NotNil(t, resolved[0].y)
	assert.True(t, resolved[0].newChunk)
	assert.Nil(t, resolved[1].x)
}
