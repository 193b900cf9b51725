package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/tui/ui"
)

// RecordDetail shows every field of one record.
type RecordDetail struct {
	*tview.TextView
	theme *ui.Theme
	id    string
}

// NewRecordDetail creates a new detail view.
func NewRecordDetail(theme *ui.Theme) *RecordDetail {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)

	return &RecordDetail{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (rd *RecordDetail) Name() string { return "Details" }

// Init implements Component.
func (rd *RecordDetail) Init() {}

// Start implements Component.
func (rd *RecordDetail) Start() {}

// Stop implements Component.
func (rd *RecordDetail) Stop() {}

// Hints implements Component.
func (rd *RecordDetail) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: "a", Description: "Approve"},
		{Key: "x", Description: "Reject"},
		{Key: "p", Description: "Pending"},
		{Key: "m", Description: "Reply"},
	}
}

// ID returns the id of the displayed record.
func (rd *RecordDetail) ID() string { return rd.id }

// Update renders r.
func (rd *RecordDetail) Update(r records.Record) {
	rd.id = r.ID
	rd.Clear()
	_, _ = fmt.Fprint(rd, rd.text(r))
	name := records.Value(r.Name)
	if name == "" {
		name = r.ID
	}
	rd.SetTitle(fmt.Sprintf(" %s (%s) ", tview.Escape(sanitizeForTerminal(name)), r.Kind))
	rd.ScrollToBeginning()
}

type field struct {
	label string
	value *string
}

func (rd *RecordDetail) text(r records.Record) string {
	fg := ui.Tag(rd.theme.FgColor)
	ct := ui.Tag(rd.theme.CounterColor)
	st := r.EffectiveStatus()

	fields := []field{
		{"Name", r.Name},
		{"Email", r.Email},
		{"Phone", r.Phone},
		{"Company", r.Company},
		{"Service", r.Service},
	}
	if r.Kind == records.KindAppointment {
		fields = append(fields,
			field{"Date", r.PreferredDate},
			field{"Time", r.PreferredTime},
			field{"Meeting", r.MeetingType},
		)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, f := range fields {
		v := "-"
		if f.value != nil && *f.value != "" {
			v = tview.Escape(sanitizeForTerminal(*f.value))
		}
		fmt.Fprintf(&b, " [%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, f.label+":", ct, v)
	}
	fmt.Fprintf(&b, " [%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, "Status:", ui.Tag(rd.theme.StatusColor(string(st))), st)
	created := r.CreatedAtDisplay
	if created == "" {
		created = "-"
	}
	fmt.Fprintf(&b, " [%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, "Created:", ct, tview.Escape(created))
	fmt.Fprintf(&b, " [%s::b]%-9s[-:-:-] [%s]%s[-]\n", fg, "ID:", ct, tview.Escape(r.ID))

	if msg := records.Value(r.Message); msg != "" {
		fmt.Fprintf(&b, "\n [%s::b]Message[-:-:-]\n\n %s\n", fg, tview.Escape(sanitizeForTerminal(msg)))
	}
	return b.String()
}
