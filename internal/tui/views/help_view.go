package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/hrdash/hrdash/internal/tui/ui"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"Global", [][2]string{
		{"?", "This help"},
		{"q", "Quit"},
		{"Esc", "Go back / cancel"},
		{"r", "Refresh from the store"},
		{":", "Command mode"},
	}},
	{"Records", [][2]string{
		{"Enter", "Show record details"},
		{"/", "Search name, email, company, phone"},
		{"t", "Cycle type filter (all, contact, appointment)"},
		{"f", "Cycle status filter"},
		{"c", "Clear all filters"},
		{"a / x / p", "Approve / reject / mark pending"},
		{"m", "Reply by mail"},
		{"n", "New record"},
		{"e", "Export to JSON"},
		{"g", "Analytics"},
	}},
	{"Commands", [][2]string{
		{":type <all|contact|appointment>", "Set type filter"},
		{":status <all|new|pending|approved|rejected>", "Set status filter"},
		{":export", "Export to JSON"},
		{":analytics", "Analytics"},
		{":quit", "Quit"},
	}},
}

func (hv *HelpView) render() {
	kc := ui.Tag(hv.theme.MenuKeyColor)
	var b strings.Builder
	for _, s := range helpSections {
		fmt.Fprintf(&b, "\n  [::b]%s[-:-:-]\n\n", s.title)
		for _, k := range s.keys {
			fmt.Fprintf(&b, "  [%s]%-12s[-:-:-] %s\n", kc, tview.Escape(k[0]), k[1])
		}
	}
	_, _ = fmt.Fprint(hv, b.String())
}
