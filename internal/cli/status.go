package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrdash/hrdash/internal/records"
)

type statusView struct {
	Profile      string `json:"profile"`
	State        string `json:"state"`
	Backend      string `json:"backend"`
	UptimeMs     int64  `json:"uptimeMs"`
	Contacts     int64  `json:"contacts"`
	Appointments int64  `json:"appointments"`
}

func (r *runner) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon state and record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSession(false, func(ctx context.Context, s *session) error {
				st, err := s.src.Status(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if r.opts.json {
					return writeJSON(out, statusView{
						Profile:      st.Profile,
						State:        st.State,
						Backend:      st.Backend,
						UptimeMs:     st.Uptime.Milliseconds(),
						Contacts:     st.Contacts,
						Appointments: st.Appointments,
					})
				}
				fmt.Fprintf(out, "Profile:      %s\n", bold(st.Profile))
				fmt.Fprintf(out, "State:        %s\n", colorState(st.State))
				fmt.Fprintf(out, "Backend:      %s\n", st.Backend)
				fmt.Fprintf(out, "Uptime:       %s\n", st.Uptime.Truncate(time.Second))
				fmt.Fprintf(out, "Contacts:     %d\n", st.Contacts)
				fmt.Fprintf(out, "Appointments: %d\n", st.Appointments)
				return nil
			})
		},
	}
}

func (r *runner) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSession(true, func(ctx context.Context, s *session) error {
				st := s.dash.Stats()
				out := cmd.OutOrStdout()
				if r.opts.json {
					return writeJSON(out, st)
				}
				rows := [][]string{
					{"Contacts", fmt.Sprint(st.Contacts)},
					{"New contacts", fmt.Sprint(st.NewContacts)},
					{"Appointments", fmt.Sprint(st.Appointments)},
					{"Pending appointments", fmt.Sprint(st.PendingAppointments)},
				}
				for _, status := range records.Statuses {
					rows = append(rows, []string{"Status " + colorStatus(status), fmt.Sprint(st.ByStatus[status])})
				}
				return renderTable(out, []string{"Counter", "Value"}, rows)
			})
		},
	}
}
