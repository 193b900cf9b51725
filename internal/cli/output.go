package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hrdash/hrdash/internal/records"
)

var statusColors = map[records.Status]*color.Color{
	records.StatusNew:      color.New(color.FgCyan),
	records.StatusPending:  color.New(color.FgYellow),
	records.StatusApproved: color.New(color.FgGreen),
	records.StatusRejected: color.New(color.FgRed),
}

func colorStatus(st records.Status) string {
	if c, ok := statusColors[st]; ok {
		return c.Sprint(string(st))
	}
	return string(st)
}

func colorState(state string) string {
	switch state {
	case "READY":
		return color.GreenString(state)
	case "DEGRADED", "CONNECTING", "BOOTING":
		return color.YellowString(state)
	case "ERROR":
		return color.RedString(state)
	}
	return state
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	t := newTable(w)
	t.Header(header)
	if err := t.Bulk(rows); err != nil {
		return err
	}
	return t.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bar(n, peak, width int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	size := n * width / peak
	if size == 0 {
		size = 1
	}
	return strings.Repeat("█", size)
}
