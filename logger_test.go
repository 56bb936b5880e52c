package textflow

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	logger().Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")

	// Resetting to nil restores the silent default.
	SetLogger(nil)
	buf.Reset()
	logger().Debug("quiet")
	assert.Empty(t, buf.String())
}

func TestGlyphError(t *testing.T) {
	err := &GlyphError{GID: 7, Rune: 'x', Err: ErrNoFace}
	require.ErrorIs(t, err, ErrNoFace)
	assert.Contains(t, err.Error(), "7")
}
