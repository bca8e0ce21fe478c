// ABOUTME: Quick-action icon name to terminal glyph mapping
// ABOUTME: Finite recognized set with a defined fallback for unknown names

package chat

// iconGlyphs is the explicit mapping of recognized quick-action icon names
// to terminal glyphs. The names mirror the icon set the admin portal lets
// editors choose from.
var iconGlyphs = map[string]string{
	"Book":     "📖",
	"Calendar": "📅",
	"Users":    "👥",
	"Loader":   "⏳",
}

// fallbackGlyph is rendered for unrecognized or empty icon names.
const fallbackGlyph = "•"

// IconGlyph maps a quick-action icon name to a terminal glyph. Unrecognized
// names get the fallback glyph rather than an error; the icon is cosmetic.
func IconGlyph(name string) string {
	if glyph, ok := iconGlyphs[name]; ok {
		return glyph
	}
	return fallbackGlyph
}

// IconNames returns the recognized icon names, for admin form prompts.
func IconNames() []string {
	return []string{"Book", "Calendar", "Users", "Loader"}
}
