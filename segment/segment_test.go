package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLineBreaks(t *testing.T) {
	b := Analyze("hello world")
	require.Len(t, b.Line, 11)

	// The only break opportunity is after the space.
	assert.Equal(t, LineAllowed, b.Line[5])
	for i := 0; i < 5; i++ {
		assert.Equal(t, LineNone, b.Line[i], "index %d", i)
	}
}

func TestAnalyzeMandatoryBreak(t *testing.T) {
	b := Analyze("a\nb")
	assert.Equal(t, LineMandatory, b.Line[1])
	assert.Equal(t, LineNone, b.Line[0])
}

func TestAnalyzeEndOfText(t *testing.T) {
	// The end of text is not a mandatory break unless the last rune
	// is a break character itself.
	b := Analyze("ab")
	assert.NotEqual(t, LineMandatory, b.Line[1])

	b = Analyze("ab\n")
	assert.Equal(t, LineMandatory, b.Line[2])
}

func TestAnalyzeGraphemes(t *testing.T) {
	// e + combining acute form one grapheme cluster.
	b := Analyze("éx")
	require.Len(t, b.Grapheme, 3)
	assert.False(t, b.Grapheme[0], "no boundary inside the cluster")
	assert.True(t, b.Grapheme[1])
	assert.True(t, b.Grapheme[2])
}

func TestAnalyzeWords(t *testing.T) {
	b := Analyze("ab cd")
	assert.True(t, b.Word[1], "word ends after b")
	assert.False(t, b.Word[0])
	assert.True(t, b.Word[4])
}

func TestIsMandatoryBreak(t *testing.T) {
	for _, r := range []rune{'\n', '\r', '\v', '\f', '', ' ', ' '} {
		assert.True(t, IsMandatoryBreak(r), "%U", r)
	}
	assert.False(t, IsMandatoryBreak(' '))
	assert.False(t, IsMandatoryBreak('a'))
}

func TestAnalyzeEmpty(t *testing.T) {
	b := Analyze("")
	assert.Empty(t, b.Line)
	assert.Empty(t, b.Grapheme)
	assert.Empty(t, b.Word)
}
