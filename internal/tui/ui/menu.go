package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// menuRows is the height of the header; hints wrap into further columns.
const menuRows = 6

// Menu displays keyboard shortcut hints in columns.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders menu hints, menuRows per column.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	_, _ = fmt.Fprint(m, m.text(hints))
}

func (m *Menu) text(hints []MenuHint) string {
	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)

	width := 0
	for _, h := range hints {
		width = max(width, len(h.Key)+len(h.Description)+3)
	}

	lines := make([]string, min(len(hints), menuRows))
	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		pad := strings.Repeat(" ", width-len(h.Key)-len(h.Description)-3+2)
		lines[i%menuRows] += fmt.Sprintf("[%s::b]<%s>[-:-:-] %s%s", kc, h.Key, h.Description, pad)
	}
	return strings.Join(lines, "\n")
}
