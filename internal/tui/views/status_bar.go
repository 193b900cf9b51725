package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar displays the profile, daemon state, counters and the time of
// the last successful fetch.
type StatusBar struct {
	*tview.TextView
	profile   string
	state     string
	shown     int
	total     int
	fetchedAt time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv}
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetState updates the daemon state display.
func (sb *StatusBar) SetState(state string) {
	sb.state = state
	sb.render()
}

// SetCounts updates the shown/total record counters.
func (sb *StatusBar) SetCounts(shown, total int, fetchedAt time.Time) {
	sb.shown = shown
	sb.total = total
	sb.fetchedAt = fetchedAt
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	state := sb.state
	switch state {
	case "":
		state = "-"
	case "READY":
		state = "[green]" + state + "[-]"
	case "ERROR":
		state = "[red]" + state + "[-]"
	default:
		state = "[yellow]" + state + "[-]"
	}

	fetched := "never"
	if !sb.fetchedAt.IsZero() {
		fetched = sb.fetchedAt.Format("15:04:05")
	}

	_, _ = fmt.Fprintf(sb, " [::b]%s[-:-:-] | %s | %d/%d records | fetched %s | %s",
		tview.Escape(sb.profile), state, sb.shown, sb.total, fetched, time.Now().Format("15:04"))
}
