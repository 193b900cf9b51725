package daemon

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hrdash/hrdash/internal/api"
	"github.com/hrdash/hrdash/internal/bus"
	"github.com/hrdash/hrdash/internal/config"
	"github.com/hrdash/hrdash/internal/health"
	"github.com/hrdash/hrdash/internal/lock"
	"github.com/hrdash/hrdash/internal/logging"
	"github.com/hrdash/hrdash/internal/profile"
	"github.com/hrdash/hrdash/internal/status"
	"github.com/hrdash/hrdash/internal/store"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	Profile        string
	Config         *config.Config
	SocketPath     string        // optional override for testing; empty = use default
	HealthInterval time.Duration // zero = health.DefaultInterval
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideMonitor,
			provideRecordService,
			provideDaemonService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) *config.Config {
	if p.Config != nil {
		return p.Config
	}
	return config.Default()
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.Profile), p.Profile)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.Profile); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(profile.Dir(p.Profile))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideStore depends on the lock so the store is only opened by the
// process that owns the profile.
func provideStore(p Params, cfg *config.Config, _ *lock.Lock, m *status.Machine, logger *zap.Logger) (store.Backend, error) {
	if err := cfg.Validate(); err != nil {
		m.Fail()
		return nil, err
	}
	if err := m.Transition(status.Connecting); err != nil {
		return nil, err
	}
	backend, err := OpenBackend(context.Background(), cfg, profile.DBPath(p.Profile), logger)
	if err != nil {
		m.Fail()
		return nil, err
	}
	return backend, nil
}

// OpenBackend opens the document store selected by cfg. SQLite databases are
// migrated before use.
func OpenBackend(ctx context.Context, cfg *config.Config, dbPath string, logger *zap.Logger) (store.Backend, error) {
	switch cfg.Store.Backend {
	case store.BackendMongo:
		m, err := store.OpenMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, err
		}
		logger.Info("store initialized", zap.String("backend", store.BackendMongo), zap.String("database", cfg.Store.MongoDatabase))
		return m, nil
	case "", store.BackendSQLite:
		db, err := store.Open(dbPath)
		if err != nil {
			return nil, err
		}
		result, err := db.Migrate()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if result.Changed {
			logger.Info("migrations applied", zap.Uint("version", result.Version))
		} else {
			logger.Info("migrations up to date", zap.Uint("version", result.Version))
		}
		logger.Info("store initialized", zap.String("backend", store.BackendSQLite), zap.String("path", dbPath))
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func provideMonitor(p Params, backend store.Backend, m *status.Machine, b *bus.Bus, logger *zap.Logger) *health.Monitor {
	return health.NewMonitor(backend, m, b, logger, p.HealthInterval)
}

func provideRecordService(backend store.Backend, m *status.Machine, b *bus.Bus, logger *zap.Logger) *api.RecordService {
	return api.NewRecordService(backend, m, b, logger)
}

func provideDaemonService(p Params, m *status.Machine, backend store.Backend) *api.DaemonService {
	return api.NewDaemonService(p.Profile, m, backend)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, recordSvc *api.RecordService, lk *lock.Lock, backend store.Backend, monitor *health.Monitor, b *bus.Bus, logger *zap.Logger) {
	events, unsub := b.Subscribe("daemon.", 16)
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go logStateChanges(events, stop, logger)

			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			// First check runs immediately and moves CONNECTING to READY or DEGRADED.
			monitor.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			monitor.Stop()
			recordSvc.Shutdown()
			srv.Stop(ctx)
			if err := backend.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			unsub()
			close(stop)
			logger.Info("daemon stopped")
			_ = logger.Sync()
			return nil
		},
	})
}

func logStateChanges(events <-chan bus.Event, stop <-chan struct{}, logger *zap.Logger) {
	for {
		select {
		case evt := <-events:
			if change, ok := evt.Payload.(status.StatusChange); ok {
				logger.Info("state changed", zap.String("from", string(change.From)), zap.String("to", string(change.To)))
			}
		case <-stop:
			return
		}
	}
}
