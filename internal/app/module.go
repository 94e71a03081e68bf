// Package app wires the lock engine, the biometric backend and the terminal
// UI together with fx.
package app

import (
	"context"

	"github.com/akyairhashvil/applock/internal/biometric"
	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/database"
	"github.com/akyairhashvil/applock/internal/lock"
	"github.com/akyairhashvil/applock/internal/tui"
	"github.com/akyairhashvil/applock/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CoreModule provides the lock engine and everything it depends on.
func CoreModule(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			newContext,
			newKV,
			newStore,
			newProvider,
			newProber,
			newService,
			newAuthenticator,
		),
	)
}

// Module is CoreModule plus the terminal program.
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		CoreModule(cfg),
		fx.Provide(newProgram),
		fx.Invoke(registerHooks),
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return util.NewLogger(cfg.LogLevel, cfg.LogPath())
}

// newContext is cancelled when the app stops, which aborts any biometric
// prompt still running.
func newContext(lc fx.Lifecycle) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return ctx
}

func newKV(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, log *zap.Logger) (lock.KV, error) {
	if cfg.Ephemeral {
		log.Info("ephemeral mode: lock settings kept in memory")
		return lock.NewMemoryKV(), nil
	}
	db, err := database.Open(ctx, cfg.DBPath())
	if err != nil {
		return nil, err
	}
	version, err := db.Version(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("settings database opened", zap.String("path", db.Path()), zap.Int64("schema_version", version))
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("closing settings database")
			return db.Close()
		},
	})
	return db, nil
}

func newStore(kv lock.KV, log *zap.Logger) *lock.Store {
	return lock.NewStore(kv, log.Named("store"))
}

func newProvider(cfg *config.Config, log *zap.Logger) (biometric.Provider, error) {
	return biometric.Detect(cfg.Biometric.Provider, log.Named("biometric"))
}

func newProber(p biometric.Provider, log *zap.Logger) *biometric.Prober {
	return biometric.NewProber(p, log.Named("biometric"))
}

func newService(store *lock.Store, prober *biometric.Prober, cfg *config.Config, log *zap.Logger) *lock.Service {
	return lock.NewService(store,
		lock.WithCapability(prober),
		lock.WithHasher(util.NewPinHasher(cfg.PinHashCost)),
		lock.WithLogger(log.Named("lock")),
	)
}

func newAuthenticator(p biometric.Provider, svc *lock.Service, cfg *config.Config, log *zap.Logger) *biometric.Authenticator {
	return biometric.NewAuthenticator(p, svc, cfg.Biometric.CancelLabel, log.Named("biometric"))
}

func newProgram(ctx context.Context, svc *lock.Service, prober *biometric.Prober, auth *biometric.Authenticator, cfg *config.Config, log *zap.Logger) *tea.Program {
	if !tui.SetTheme(cfg.Theme) {
		log.Warn("unknown theme, using default", zap.String("theme", cfg.Theme))
	}
	model := tui.NewMainModel(ctx, svc, prober, auth,
		tui.WithLogger(log.Named("tui")),
		tui.WithAuthReason(cfg.Biometric.Reason),
	)
	return tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
}

func registerHooks(
	lifecycle fx.Lifecycle,
	program *tea.Program,
	shutdowner fx.Shutdowner,
	log *zap.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if _, err := program.Run(); err != nil {
					log.Error("terminal program failed", zap.Error(err))
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					log.Error("shutdown failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			program.Quit()
			program.Wait()
			return nil
		},
	})
}
