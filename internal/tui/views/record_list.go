package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/tui/ui"
)

// RecordList is the main table of contacts and appointments.
type RecordList struct {
	*tview.Table
	theme    *ui.Theme
	rows     []records.Record
	total    int
	criteria records.Criteria
}

// NewRecordList creates the record table.
func NewRecordList(theme *ui.Theme) *RecordList {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitleColor(theme.TitleColor)

	rl := &RecordList{
		Table: table,
		theme: theme,
	}
	rl.render()
	return rl
}

// Name implements Component.
func (rl *RecordList) Name() string { return "Records" }

// Init implements Component.
func (rl *RecordList) Init() {}

// Start implements Component.
func (rl *RecordList) Start() {}

// Stop implements Component.
func (rl *RecordList) Stop() {}

// Hints implements Component.
func (rl *RecordList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Details"},
		{Key: "/", Description: "Search"},
		{Key: "t", Description: "Type filter"},
		{Key: "f", Description: "Status filter"},
		{Key: "a", Description: "Approve"},
		{Key: "x", Description: "Reject"},
		{Key: "p", Description: "Pending"},
		{Key: "m", Description: "Reply"},
		{Key: "n", Description: "New"},
		{Key: "e", Description: "Export"},
		{Key: "g", Description: "Analytics"},
		{Key: "r", Description: "Refresh"},
	}
}

// Update replaces the visible rows. total is the unfiltered record count.
func (rl *RecordList) Update(rows []records.Record, total int, c records.Criteria) {
	selected := rl.Selected()
	rl.rows = rows
	rl.total = total
	rl.criteria = c
	rl.render()
	rl.selectID(selected)
}

func (rl *RecordList) render() {
	rl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 2},
		{" TYPE", 0},
		{" STATUS", 0},
		{" CREATED", 0},
		{" EMAIL", 2},
	}
	for col, h := range headers {
		rl.SetCell(0, col, tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(rl.theme.TableHeaderFg).
			SetBackgroundColor(rl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp))
	}

	for i, r := range rl.rows {
		row := i + 1
		st := r.EffectiveStatus()
		rl.SetCell(row, 0, rl.cell(records.Value(r.Name), 2))
		rl.SetCell(row, 1, rl.cell(string(r.Kind), 0))
		rl.SetCell(row, 2, rl.cell(string(st), 0).SetTextColor(rl.theme.StatusColor(string(st))))
		rl.SetCell(row, 3, rl.cell(r.CreatedAtDisplay, 0))
		rl.SetCell(row, 4, rl.cell(records.Value(r.Email), 2))
	}

	rl.SetTitle(rl.title())
}

func (rl *RecordList) cell(text string, exp int) *tview.TableCell {
	return tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(text))).
		SetExpansion(exp).
		SetTextColor(rl.theme.FgColor)
}

func (rl *RecordList) title() string {
	var filters []string
	if rl.criteria.Kind != "" && rl.criteria.Kind != records.KindAll {
		filters = append(filters, "type:"+string(rl.criteria.Kind))
	}
	if rl.criteria.Status != "" && rl.criteria.Status != records.StatusAll {
		filters = append(filters, "status:"+string(rl.criteria.Status))
	}
	if q := strings.TrimSpace(rl.criteria.Query); q != "" {
		filters = append(filters, "/"+tview.Escape(q))
	}
	if len(filters) == 0 {
		return fmt.Sprintf(" Records (%d) ", rl.total)
	}
	return fmt.Sprintf(" Records (%d/%d) %s ", len(rl.rows), rl.total, strings.Join(filters, " "))
}

// Selected returns the id of the highlighted record, or "".
func (rl *RecordList) Selected() string {
	row, _ := rl.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(rl.rows) {
		return ""
	}
	return rl.rows[idx].ID
}

// selectID keeps the cursor on the same record across refreshes.
func (rl *RecordList) selectID(id string) {
	if id == "" {
		if len(rl.rows) > 0 {
			rl.Select(1, 0)
		}
		return
	}
	for i, r := range rl.rows {
		if r.ID == id {
			rl.Select(i+1, 0)
			return
		}
	}
	if len(rl.rows) > 0 {
		rl.Select(1, 0)
	}
}
