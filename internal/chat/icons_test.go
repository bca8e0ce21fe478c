// ABOUTME: Tests for the quick-action icon mapping
// ABOUTME: Recognized names map to glyphs, everything else to the fallback

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconGlyph_RecognizedNames(t *testing.T) {
	for _, name := range IconNames() {
		glyph := IconGlyph(name)
		assert.NotEmpty(t, glyph, "icon %q", name)
		assert.NotEqual(t, fallbackGlyph, glyph, "icon %q", name)
	}
}

func TestIconGlyph_UnrecognizedFallsBack(t *testing.T) {
	assert.Equal(t, fallbackGlyph, IconGlyph("Sparkles"))
	assert.Equal(t, fallbackGlyph, IconGlyph(""))
	assert.Equal(t, fallbackGlyph, IconGlyph("book")) // names are case-sensitive
}
