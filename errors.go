package textflow

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by textflow operations.
var (
	// ErrNoFace indicates that no font face could be resolved for a
	// character, not even a fallback.
	ErrNoFace = errors.New("textflow: no font face available")

	// ErrEmptyPath indicates a text path with no usable geometry.
	ErrEmptyPath = errors.New("textflow: empty text path")

	// ErrInvalidRange indicates a character or cursor index outside the
	// laid-out text.
	ErrInvalidRange = errors.New("textflow: index out of range")
)

// GlyphError reports a glyph that could not be loaded from its face.
type GlyphError struct {
	GID  uint32
	Rune rune
	Err  error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("textflow: glyph %d (%q): %v", e.GID, e.Rune, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }
