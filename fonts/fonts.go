// Package fonts resolves font faces for text layout.
//
// The default implementation, [Map], is backed by go-text's fontscan
// index and covers system fonts plus any fonts added explicitly. The
// [Source] interface is small enough to fake in tests, and it satisfies
// go-text's shaping.Fontmap so it can be handed to the segmenter
// directly.
package fonts

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
)

// Query describes the face being looked up.
type Query struct {
	// Families is an ordered list of font family names. Generic CSS
	// names (serif, sans-serif, monospace, cursive, fantasy) are
	// understood by Map.
	Families []string

	// Aspect holds style, weight and stretch. Zero fields default to
	// normal style, regular weight and normal stretch.
	Aspect font.Aspect
}

// Source resolves runes to font faces under the current query. A
// Source is stateful: SetQuery selects the family and aspect used by
// subsequent ResolveFace calls.
//
// Source is a superset of go-text's shaping.Fontmap, so any Source can
// be used for face splitting during shaping.
type Source interface {
	SetQuery(q Query)

	// ResolveFace returns a face able to display r, falling back to
	// other families and finally to any available face. It returns nil
	// only when the source has no faces at all.
	ResolveFace(r rune) *font.Face
}

// Map is a Source backed by a fontscan index of system and explicitly
// added fonts. Not safe for concurrent use.
type Map struct {
	fm *fontscan.FontMap
}

// NewMap returns a Map indexing the system fonts. Building the index
// the first time can be slow, the index is cached in the user cache
// directory afterwards.
func NewMap() (*Map, error) {
	fm := fontscan.NewFontMap(nil)
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	if err := fm.UseSystemFonts(dir); err != nil {
		return nil, fmt.Errorf("fonts: indexing system fonts: %w", err)
	}
	return &Map{fm: fm}, nil
}

// NewMapWithoutSystemFonts returns an empty Map. Fonts must be added
// with AddFont before layout can resolve any face.
func NewMapWithoutSystemFonts() *Map {
	return &Map{fm: fontscan.NewFontMap(nil)}
}

// AddFont parses and indexes a font from raw file data. The location
// is an arbitrary identifier used by the index. If familyName is not
// empty it overrides the family declared in the font.
func (m *Map) AddFont(data []byte, location, familyName string) error {
	if err := m.fm.AddFont(bytes.NewReader(data), location, familyName); err != nil {
		return fmt.Errorf("fonts: adding %s: %w", location, err)
	}
	return nil
}

// SetQuery implements Source.
func (m *Map) SetQuery(q Query) {
	m.fm.SetQuery(fontscan.Query{Families: q.Families, Aspect: q.Aspect})
}

// ResolveFace implements Source.
func (m *Map) ResolveFace(r rune) *font.Face {
	return m.fm.ResolveFace(r)
}

// ParseTTF parses a TTF or OTF font file into a face.
func ParseTTF(data []byte) (*font.Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: parsing font: %w", err)
	}
	return face, nil
}

// Single is a Source that always resolves to one face, regardless of
// query or rune. Mainly useful in tests.
type Single struct {
	Face *font.Face
}

// SetQuery implements Source. It is a no-op.
func (Single) SetQuery(Query) {}

// ResolveFace implements Source.
func (s Single) ResolveFace(rune) *font.Face { return s.Face }

var _ Source = (*Map)(nil)
var _ Source = Single{}
