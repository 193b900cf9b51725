package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/hrdash/hrdash/internal/records"
	"github.com/hrdash/hrdash/internal/tui/ui"
)

const (
	barWidth  = 30
	lastDays  = 7
	lastWeeks = 8
)

// AnalyticsView charts record counts per day, ISO week and month.
type AnalyticsView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewAnalyticsView creates the analytics page.
func NewAnalyticsView(theme *ui.Theme) *AnalyticsView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Analytics ")
	tv.SetTitleColor(theme.TitleColor)

	return &AnalyticsView{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (av *AnalyticsView) Name() string { return "Analytics" }

// Init implements Component.
func (av *AnalyticsView) Init() {}

// Start implements Component.
func (av *AnalyticsView) Start() {}

// Stop implements Component.
func (av *AnalyticsView) Stop() {}

// Hints implements Component.
func (av *AnalyticsView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: "r", Description: "Refresh"},
	}
}

// Update renders the buckets and status totals.
func (av *AnalyticsView) Update(a records.Analytics, s records.Stats) {
	av.Clear()
	var b strings.Builder
	av.section(&b, fmt.Sprintf("Last %d days", lastDays), records.LastN(records.Buckets(a.Daily), lastDays))
	av.section(&b, "Weeks", records.LastN(records.Buckets(a.Weekly), lastWeeks))
	av.section(&b, "Months", records.Buckets(a.Monthly))

	fg := ui.Tag(av.theme.FgColor)
	fmt.Fprintf(&b, "\n [%s::b]By status[-:-:-]\n", fg)
	for _, st := range records.Statuses {
		fmt.Fprintf(&b, "  [%s]%-10s[-] %d\n", ui.Tag(av.theme.StatusColor(string(st))), st, s.ByStatus[st])
	}
	_, _ = fmt.Fprint(av, b.String())
	av.ScrollToBeginning()
}

func (av *AnalyticsView) section(b *strings.Builder, title string, buckets []records.Bucket) {
	fmt.Fprintf(b, "\n [%s::b]%s[-:-:-]\n", ui.Tag(av.theme.FgColor), title)
	if len(buckets) == 0 {
		b.WriteString("  no dated records\n")
		return
	}
	peak := 0
	for _, bk := range buckets {
		peak = max(peak, bk.Count)
	}
	bar := ui.Tag(av.theme.BarColor)
	for _, bk := range buckets {
		n := bk.Count * barWidth / peak
		if n == 0 && bk.Count > 0 {
			n = 1
		}
		fmt.Fprintf(b, "  %-10s [%s]%s[-] %d\n", bk.Label, bar, strings.Repeat("█", n), bk.Count)
	}
}
