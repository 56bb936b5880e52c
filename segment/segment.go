// Package segment computes Unicode text boundaries for layout.
//
// It wraps rivo/uniseg and reports, per rune, whether a grapheme
// cluster, word or line break opportunity follows that rune. Indices
// are rune indices, matching the layout engine's addressing.
package segment

import "github.com/rivo/uniseg"

// LineBreak classifies the line-break opportunity after a rune.
type LineBreak uint8

const (
	// LineNone forbids a break after the rune.
	LineNone LineBreak = iota
	// LineAllowed permits a break after the rune.
	LineAllowed
	// LineMandatory forces a break after the rune.
	LineMandatory
)

// Boundaries holds per-rune boundary flags for a text. All slices have
// one entry per rune; entry i describes the position after rune i.
type Boundaries struct {
	Line     []LineBreak
	Grapheme []bool
	Word     []bool
}

// IsMandatoryBreak reports whether r forces a line break by itself.
func IsMandatoryBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '', ' ', ' ':
		return true
	}
	return false
}

// Analyze segments text and returns its boundary flags.
//
// UAX #14 reports a mandatory break at end of text. That final break
// is kept only when the last rune is itself a mandatory break
// character, otherwise it is downgraded to an allowed break, since the
// end of the text is not a break the caller asked for.
func Analyze(text string) Boundaries {
	runes := []rune(text)
	b := Boundaries{
		Line:     make([]LineBreak, len(runes)),
		Grapheme: make([]bool, len(runes)),
		Word:     make([]bool, len(runes)),
	}
	state := -1
	rest := text
	idx := 0 // rune index of the current cluster start
	for len(rest) > 0 {
		var cluster string
		var bounds int
		cluster, rest, bounds, state = uniseg.StepString(rest, state)
		last := idx + len([]rune(cluster)) - 1

		// Every step ends at a grapheme boundary.
		b.Grapheme[last] = true
		if bounds&uniseg.MaskWord != 0 {
			b.Word[last] = true
		}
		switch bounds & uniseg.MaskLine {
		case uniseg.LineCanBreak:
			b.Line[last] = LineAllowed
		case uniseg.LineMustBreak:
			b.Line[last] = LineMandatory
		}
		idx = last + 1
	}
	if n := len(runes); n > 0 {
		if b.Line[n-1] == LineMandatory && !IsMandatoryBreak(runes[n-1]) {
			b.Line[n-1] = LineAllowed
		}
	}
	return b
}
