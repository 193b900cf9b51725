package views

import "testing"

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "Ali Hassan", "Ali Hassan"},
		{"arabic kept", "نور", "نور"},
		{"rtl marks", "\u200fنور\u200e", "نور"},
		{"isolate", "\u2067Sara\u2069", "Sara"},
		{"skin tone", "\U0001F44B\U0001F3FD hi", "\U0001F44B hi"},
		{"variation selector", "\u2764\ufe0f", "\u2764"},
		{"zwj", "a\u200db", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeForTerminal(tt.in); got != tt.want {
				t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
