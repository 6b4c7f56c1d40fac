package habitservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/DivyanshuSingh0/HabitSphere/internal/api"
	"github.com/DivyanshuSingh0/HabitSphere/internal/config"
	"github.com/DivyanshuSingh0/HabitSphere/internal/factory"
	"github.com/DivyanshuSingh0/HabitSphere/internal/logger"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store"
)

// Options carries command-line overrides applied on top of the environment
// configuration.
type Options struct {
	// DBDriver overrides HABITSPHERE_DB_DRIVER when non-empty (postgres, sqlite).
	DBDriver string
}

// Run starts the habit service HTTP server and blocks until shutdown or error.
func Run(opts Options) error {
	log := logger.New("habit-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if opts.DBDriver != "" {
		cfg.DBDriver = opts.DBDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Error().Err(err).Msg("Invalid db-driver override")
			return err
		}
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Habit service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}

	if err := pingStore(ctx, st); err != nil {
		log.Error().Stack().Err(err).Msg("Store not reachable at startup")
		return err
	}

	router := api.NewRouter(st)
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// pingStore fails fast when the configured backend cannot answer a probe.
func pingStore(ctx context.Context, st store.Store) error {
	pinger, ok := st.(store.Pinger)
	if !ok {
		return nil
	}
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return pinger.HealthPing(probeCtx)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
