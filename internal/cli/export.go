package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/export"
	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/profile"
	"github.com/hrdash/hrdash/internal/records"
)

func (r *runner) exportCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write both collections to hr-data-YYYY-MM-DD.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = profile.ExportDir(r.name)
			}
			return r.withSession(true, func(ctx context.Context, s *session) error {
				path, err := export.Write(dir, s.dash.Contacts(), s.dash.Appointments(), time.Now())
				if err != nil {
					return err
				}
				r.logger.Debug("exported", zap.String("path", path))
				if r.opts.json {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"path": path})
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", "", "output directory (default: the profile exports directory)")
	return cmd
}

func (r *runner) mailCommand() *cobra.Command {
	var subject, body string
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "mail <kind> <id>",
		Short: "Open a reply to a record in the mail client",
		Long: `Compose a mailto: reply to the record's email address and hand it to
the desktop mail client. With --print the URI is written to stdout instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := records.ParseKind(args[0])
			if err != nil {
				return err
			}
			if subject == "" {
				subject = r.cfg.Mail.Subject
			}
			id := args[1]
			return r.withSession(true, func(ctx context.Context, s *session) error {
				rec, ok := s.dash.Find(id)
				if !ok || (kind != records.KindAll && rec.Kind != kind) {
					return fmt.Errorf("%s %s not found", kind, id)
				}
				var uri string
				if printOnly {
					uri, err = mail.Compose(rec, subject, body)
				} else {
					uri, err = mail.Reply(r.deps.Opener, rec, subject, body)
				}
				if err != nil {
					return err
				}
				if r.opts.json {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"id": id, "uri": uri})
				}
				fmt.Fprintln(cmd.OutOrStdout(), uri)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&subject, "subject", "", "subject line (default: the configured mail subject)")
	f.StringVar(&body, "body", "", "message body (default: a greeting addressed to the record's name)")
	f.BoolVar(&printOnly, "print", false, "print the mailto: URI without opening it")
	return cmd
}
