package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// ProfileData holds the header figures for the active profile.
type ProfileData struct {
	Profile      string
	Backend      string
	State        string
	Contacts     int
	Appointments int
	Pending      int
	Uptime       time.Duration
}

// ProfileInfo displays profile and daemon metadata in the header.
type ProfileInfo struct {
	*tview.TextView
	theme *Theme
}

// NewProfileInfo creates a new profile info panel.
func NewProfileInfo(theme *Theme) *ProfileInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &ProfileInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the profile info.
func (pi *ProfileInfo) Update(data *ProfileData) {
	pi.Clear()
	if data == nil {
		return
	}
	_, _ = fmt.Fprint(pi, pi.text(data))
}

func (pi *ProfileInfo) text(data *ProfileData) string {
	fg := colorName(pi.theme.FgColor)
	ct := colorName(pi.theme.CounterColor)

	backend := data.Backend
	if backend == "" {
		backend = "-"
	}
	state := data.State
	if state == "" {
		state = "-"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Profile:", data.Profile},
		{"Store:", backend},
		{"State:", stateColor(state) + state + "[-]"},
		{"Contacts:", fmt.Sprint(data.Contacts)},
		{"Appts:", fmt.Sprintf("%d (%d pending)", data.Appointments, data.Pending)},
		{"Uptime:", formatDuration(data.Uptime)},
	}
	var s string
	for i, r := range rows {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("[%s::b]%-9s[-:-:-] [%s]%s[-]", fg, r.label, ct, r.value)
	}
	return s
}

func stateColor(state string) string {
	switch state {
	case "READY":
		return "[green]"
	case "DEGRADED", "CONNECTING":
		return "[yellow]"
	case "ERROR":
		return "[red]"
	}
	return ""
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
