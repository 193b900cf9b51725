package tui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"quit", Command{Name: "quit"}},
		{"  q  ", Command{Name: "quit"}},
		{"Status Pending", Command{Name: "status", Args: "Pending"}},
		{"kind   appointment ", Command{Name: "type", Args: "appointment"}},
		{"new contact", Command{Name: "new", Args: "contact"}},
		{"", Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseCommand(tt.in); got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
