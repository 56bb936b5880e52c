// Package textflow lays out styled text for SVG 2 rendering.
//
// The input is a tree of [Node] values describing text content and CSS
// properties. [Engine.Layout] runs the full pipeline over that tree:
// character collection and white-space collapse, bidi reordering and
// shaping, line breaking (inline-size wrapping or shape-flowed layout),
// SVG 1.1 positioning passes (dx/dy, textLength, x/y, anchoring), text
// decorations and text-on-path, and finally cursor position indexing.
//
// The output is a [Result] holding one [CharacterResult] per collapsed
// character, each carrying its glyph, final position and cursor metadata,
// plus the line boxes and decoration paths.
//
// # Quick start
//
//	src, err := fonts.NewMap()
//	if err != nil { ... }
//	eng := textflow.New(src)
//	root := &textflow.Node{Text: "Hello"}
//	res := eng.Layout(root)
//	for _, cr := range res.Characters {
//		_ = cr.FinalPosition
//	}
//
// Layout never fails hard: malformed input yields an empty or partial
// Result rather than an error, so renderers can always draw something.
//
// # Services
//
// Font resolution is abstracted behind [fonts.Source] and shaping behind
// [Shaper]. The defaults use go-text/typesetting (fontscan for discovery,
// HarfBuzz for shaping); both can be replaced for testing.
package textflow
