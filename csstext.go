package textflow

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/textflow/segment"
)

// isCollapsibleSpace reports whether r is a collapsible white-space
// character under CSS white-space processing.
func isCollapsibleSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isSegmentBreak reports whether r is a segment break (newline class).
func isSegmentBreak(r rune) bool {
	return segment.IsMandatoryBreak(r)
}

// collapseMask computes, per rune, whether the rune is removed by
// white-space collapsing. Collapsed runes stay in the text but become
// non-addressable.
func collapseMask(runes []rune, mode SpaceCollapse) []bool {
	mask := make([]bool, len(runes))
	if mode == PreserveSpaces || mode == BreakSpaces {
		return mask
	}
	prevSpace := true // leading spaces collapse
	for i, r := range runes {
		switch {
		case isSegmentBreak(r):
			if mode == CollapseSpaces {
				// Segment breaks act as spaces and join runs.
				if prevSpace {
					mask[i] = true
				}
				prevSpace = true
			} else {
				// preserve-breaks keeps the break but eats spaces
				// around it.
				prevSpace = true
			}
		case isCollapsibleSpace(r):
			if prevSpace {
				mask[i] = true
			}
			prevSpace = true
		case r == '­':
			// Soft hyphens never render unless a break lands on them.
			mask[i] = true
		default:
			prevSpace = false
		}
	}
	// Preserved breaks also eat the spaces before them.
	if mode == PreserveBreaks {
		beforeBreak := false
		for i := len(runes) - 1; i >= 0; i-- {
			switch {
			case isSegmentBreak(runes[i]):
				beforeBreak = true
			case isCollapsibleSpace(runes[i]):
				if beforeBreak {
					mask[i] = true
				}
			default:
				beforeBreak = false
			}
		}
	}
	// Trailing collapsible spaces collapse too.
	for i := len(runes) - 1; i >= 0; i-- {
		if isCollapsibleSpace(runes[i]) {
			mask[i] = true
		} else if !isSegmentBreak(runes[i]) {
			break
		}
	}
	return mask
}

// transformText applies text-transform to s. Capitalize uses Unicode
// word-based title casing.
func transformText(s string, t TextTransform, lang string) string {
	tag := language.Und
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	switch t {
	case TransformUppercase:
		return cases.Upper(tag).String(s)
	case TransformLowercase:
		return cases.Lower(tag).String(s)
	case TransformCapitalize:
		return cases.Title(tag, cases.NoLower).String(s)
	}
	return s
}

// Hanging punctuation classes per CSS Text 3.

func isOpeningPunctuation(r rune) bool {
	return unicode.In(r, unicode.Ps, unicode.Pi) || r == '"' || r == '\''
}

func isClosingPunctuation(r rune) bool {
	return unicode.In(r, unicode.Pe, unicode.Pf) || r == '"' || r == '\''
}

func isStopOrComma(r rune) bool {
	switch r {
	case ',', '.', '،', '۔', '、', '。',
		'︐', '︑', '︒', '﹐', '﹑', '﹒',
		'，', '．', '｡', '､':
		return true
	}
	return false
}

// isJustifyIdeograph reports whether r accepts justification space on
// both sides, per CSS Text 3 ideographic expansion.
func isJustifyIdeograph(r rune) bool {
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul, unicode.Bopomofo, unicode.Yi) {
		return true
	}
	// CJK symbols and full-width forms justify like ideographs.
	return (r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFF60)
}

// lineEdgeBehaviour classifies what r does when it lands at a line
// edge. Spaces collapse, hangable punctuation hangs according to the
// hanging-punctuation property.
func lineEdgeBehaviour(r rune, hang HangingPunctuation) (start, end LineEdgeBehaviour) {
	if isCollapsibleSpace(r) || isSegmentBreak(r) {
		return Collapse, Collapse
	}
	if hang&HangFirst != 0 && isOpeningPunctuation(r) {
		start = HangBehaviour
	}
	if hang&HangLast != 0 && isClosingPunctuation(r) {
		end = HangBehaviour
	}
	if hang&HangEnd != 0 && isStopOrComma(r) {
		if hang&HangForce != 0 {
			end = ForceHang
		} else {
			end = ConditionallyHang
		}
	}
	return start, end
}

// wordBreakAllowed promotes break opportunities for word-break and
// line-break overrides. With break-all or line-break anywhere, every
// grapheme boundary becomes a break opportunity.
func wordBreakAllowed(props Properties) bool {
	return props.WordBreak == WordBreakAll || props.LineBreak == LineBreakAnywhere
}
