package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/dashboard"
	"github.com/hrdash/hrdash/internal/records"
)

func (r *runner) listCommand() *cobra.Command {
	var query, kind, status string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records of both kinds",
		Long: `List contact messages and appointment requests, contacts first.

Examples:
  hrctl list                          # Everything
  hrctl list --kind appointment       # Appointment requests only
  hrctl list --status new --query ali # New records matching "ali"
  hrctl list --json                   # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := criteria(query, kind, status)
			if err != nil {
				return err
			}
			return r.withSession(true, func(ctx context.Context, s *session) error {
				rows := s.dash.Filtered(c)
				out := cmd.OutOrStdout()
				if r.opts.json {
					return writeJSON(out, rows)
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "No records.")
					return nil
				}
				table := make([][]string, 0, len(rows))
				for _, rec := range rows {
					table = append(table, []string{
						rec.ID,
						records.Value(rec.Name),
						string(rec.Kind),
						colorStatus(rec.EffectiveStatus()),
						rec.CreatedAtDisplay,
						records.Value(rec.Email),
					})
				}
				return renderTable(out, []string{"ID", "Name", "Type", "Status", "Created", "Email"}, table)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&query, "query", "q", "", "case-insensitive search over name, email, phone and message")
	f.StringVar(&kind, "kind", "all", "contact, appointment or all")
	f.StringVar(&status, "status", "all", "new, pending, approved, rejected or all")
	return cmd
}

func criteria(query, kind, status string) (records.Criteria, error) {
	k, err := records.ParseKind(kind)
	if err != nil {
		return records.Criteria{}, err
	}
	st := records.StatusAll
	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, string(records.StatusAll)) {
		if st, err = records.ParseStatus(s); err != nil {
			return records.Criteria{}, err
		}
	}
	return records.Criteria{Query: query, Kind: k, Status: st}, nil
}

func (r *runner) analyticsCommand() *cobra.Command {
	var days, weeks, months int
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show record counts per day, week and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSession(true, func(ctx context.Context, s *session) error {
				a := s.dash.Analytics()
				out := cmd.OutOrStdout()
				if r.opts.json {
					return writeJSON(out, a)
				}
				sections := []struct {
					title string
					data  map[string]int
					n     int
				}{
					{"Daily", a.Daily, days},
					{"Weekly", a.Weekly, weeks},
					{"Monthly", a.Monthly, months},
				}
				for i, sec := range sections {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintln(out, bold(sec.title))
					if err := renderBuckets(out, records.LastN(records.Buckets(sec.data), sec.n)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&days, "days", 7, "number of latest days to show")
	f.IntVar(&weeks, "weeks", 8, "number of latest weeks to show")
	f.IntVar(&months, "months", 12, "number of latest months to show")
	return cmd
}

func renderBuckets(w io.Writer, b []records.Bucket) error {
	peak := 0
	for _, x := range b {
		peak = max(peak, x.Count)
	}
	rows := make([][]string, 0, len(b))
	for _, x := range b {
		rows = append(rows, []string{x.Label, fmt.Sprint(x.Count), bar(x.Count, peak, 30)})
	}
	return renderTable(w, []string{"Period", "Count", ""}, rows)
}

func (r *runner) setStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <kind> <id> <status>",
		Short: "Change the workflow status of a record",
		Example: `  hrctl set-status contact 3f2a... approved
  hrctl set-status appointment 64b1... pending`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := records.ParseKind(args[0])
			if err != nil {
				return err
			}
			if kind == records.KindAll {
				return fmt.Errorf("%w: %q", records.ErrInvalidKind, args[0])
			}
			st, err := records.ParseStatus(args[2])
			if err != nil {
				return err
			}
			id := args[1]
			return r.withSession(false, func(ctx context.Context, s *session) error {
				if err := s.dash.UpdateStatus(ctx, id, kind, st); err != nil {
					return err
				}
				r.logger.Debug("status updated", zap.String("id", id), zap.String("status", string(st)))
				if r.opts.json {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"id": id, "type": string(kind), "status": string(st)})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", kind, id, colorStatus(st))
				return nil
			})
		},
	}
}

func (r *runner) addCommand() *cobra.Command {
	var e dashboard.NewEntry
	cmd := &cobra.Command{
		Use:       "add contact|appointment",
		Short:     "Create a record with status new",
		ValidArgs: []string{string(records.KindContact), string(records.KindAppointment)},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Kind = records.Kind(args[0])
			if strings.TrimSpace(e.Name) == "" {
				return fmt.Errorf("--name is required")
			}
			return r.withSession(false, func(ctx context.Context, s *session) error {
				id, err := s.dash.Create(ctx, e)
				if err != nil {
					return err
				}
				if r.opts.json {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"id": id, "type": string(e.Kind)})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s %s\n", e.Kind, id)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&e.Name, "name", "", "full name")
	f.StringVar(&e.Email, "email", "", "email address")
	f.StringVar(&e.Phone, "phone", "", "phone number")
	f.StringVar(&e.Message, "message", "", "free text")
	f.StringVar(&e.Company, "company", "", "company (contact)")
	f.StringVar(&e.Service, "service", "", "requested service (contact)")
	f.StringVar(&e.PreferredDate, "date", "", "preferred date (appointment)")
	f.StringVar(&e.PreferredTime, "time", "", "preferred time (appointment)")
	f.StringVar(&e.MeetingType, "meeting", records.MeetingInPerson, "in-person or remote (appointment)")
	return cmd
}
