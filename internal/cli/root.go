// Package cli implements hrctl, the scriptable client of a profile daemon.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/config"
	"github.com/hrdash/hrdash/internal/dashboard"
	"github.com/hrdash/hrdash/internal/logging"
	"github.com/hrdash/hrdash/internal/mail"
	"github.com/hrdash/hrdash/internal/profile"
	"github.com/hrdash/hrdash/internal/rpc/hrv1"
	"github.com/hrdash/hrdash/internal/store"
	"github.com/hrdash/hrdash/internal/tui/client"
)

const requestTimeout = 10 * time.Second

// Source is what hrctl talks to: the record store plus the daemon status.
type Source interface {
	store.DocumentStore
	Status(ctx context.Context) (hrv1.DaemonStatus, error)
}

// Connector opens a Source for a profile. The returned func releases it.
type Connector func(profileName string, cfg *config.Config) (Source, func() error, error)

// Deps are the collaborators hrctl needs from the outside world.
type Deps struct {
	Connect Connector
	Opener  mail.Opener
	// LoadConfig defaults to profile.LoadConfig.
	LoadConfig func(name string) (*config.Config, error)
}

type rootOptions struct {
	profile string
	json    bool
	verbose bool
	noColor bool
}

type runner struct {
	deps   Deps
	opts   rootOptions
	cfg    *config.Config
	name   string
	logger *zap.Logger
}

// session is one open connection plus a dashboard over it.
type session struct {
	src   Source
	dash  *dashboard.Dashboard
	close func() error
}

// DaemonConnector auto-starts the profile daemon when needed and dials it.
func DaemonConnector(stderr io.Writer) Connector {
	return func(name string, _ *config.Config) (Source, func() error, error) {
		if err := profile.EnsureDir(name); err != nil {
			return nil, nil, err
		}
		socketPath := profile.SocketPath(name)
		if err := client.Ensure(name, socketPath, stderr); err != nil {
			return nil, nil, err
		}
		c, err := client.New(socketPath)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to daemon for profile %q: %w", name, err)
		}
		return c, c.Close, nil
	}
}

// NewRootCommand builds the hrctl command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.LoadConfig == nil {
		deps.LoadConfig = profile.LoadConfig
	}
	if deps.Opener == nil {
		deps.Opener = mail.NewLauncher()
	}
	r := &runner{deps: deps}

	root := &cobra.Command{
		Use:   "hrctl",
		Short: "Scriptable access to the HR dashboard",
		Long: `hrctl reads and updates contact messages and appointment requests
through the profile daemon, starting it when it is not running.

Example usage:
  hrctl list --status pending          # Pending records of both kinds
  hrctl set-status appointment ID approved
  hrctl analytics --days 14            # Daily counts of the last two weeks
  hrctl export --out ~/backups         # Write hr-data-YYYY-MM-DD.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&r.opts.profile, "profile", "", "profile name (overrides config default)")
	pf.BoolVar(&r.opts.json, "json", false, "output as JSON")
	pf.BoolVarP(&r.opts.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&r.opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		r.statusCommand(),
		r.listCommand(),
		r.statsCommand(),
		r.analyticsCommand(),
		r.setStatusCommand(),
		r.addCommand(),
		r.exportCommand(),
		r.mailCommand(),
	)
	return root
}

func (r *runner) setup() error {
	if r.opts.noColor {
		color.NoColor = true
	}
	r.logger = logging.ForCLI(r.opts.verbose)

	r.name = profile.Resolve(r.opts.profile)
	if err := profile.ValidateName(r.name); err != nil {
		return err
	}
	cfg, err := r.deps.LoadConfig(r.name)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	r.cfg = cfg

	r.logger.Debug("configuration loaded",
		zap.String("profile", r.name),
		zap.String("backend", cfg.Store.Backend),
	)
	return nil
}

func (r *runner) open() (*session, error) {
	formatter, err := r.cfg.Formatter()
	if err != nil {
		return nil, err
	}
	src, closeFn, err := r.deps.Connect(r.name, r.cfg)
	if err != nil {
		return nil, err
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &session{src: src, dash: dashboard.New(src, formatter), close: closeFn}, nil
}

// withSession opens a session, loads the snapshot when load is set, and
// runs fn under the request timeout.
func (r *runner) withSession(load bool, fn func(ctx context.Context, s *session) error) error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if load {
		if err := s.dash.Refresh(ctx); err != nil {
			return err
		}
		r.logger.Debug("snapshot loaded", zap.Int("records", len(s.dash.Snapshot())))
	}
	return fn(ctx, s)
}

// Execute runs hrctl against the real daemon.
func Execute() error {
	return NewRootCommand(Deps{Connect: DaemonConnector(os.Stderr)}).Execute()
}
