package views

import "strings"

// sanitizeForTerminal removes codepoints that tcell cannot lay out in a
// fixed-width cell grid. Form submissions in Arabic often carry explicit
// bidi marks, and names may carry emoji modifiers.
func sanitizeForTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if dropRune(r) {
			return -1
		}
		return r
	}, s)
}

func dropRune(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
	case r == 0x200D: // zero width joiner
	case r == 0x200E || r == 0x200F: // LRM, RLM
	case r >= 0x202A && r <= 0x202E: // bidi embeddings and overrides
	case r >= 0x2066 && r <= 0x2069: // bidi isolates
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
	case r >= 0xE0100 && r <= 0xE01EF:
	default:
		return false
	}
	return true
}
