package app

import (
	"cases_backend/internal/config"
	"cases_backend/internal/logging"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const (
	cleanupInterval = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (a *App) initServiceProvider() {
	a.ServiceProvider = newServiceProvider()
}

func (a *App) Run() error {
	logging.SetupJSON(slog.LevelInfo)

	err := config.Load(".env")
	if err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	a.initServiceProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := a.ServiceProvider.Router(ctx)

	go a.runJanitor(ctx)

	srv := &http.Server{
		Addr:              a.ServiceProvider.HTTPCfg().Address(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// runJanitor evicts completed rounds past the retention cap.
func (a *App) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted, err := a.ServiceProvider.RoundRepository(ctx).Cleanup(ctx, a.ServiceProvider.GameCfg().MaxCompletedRounds())
			if err != nil {
				slog.Error("round cleanup failed", "error", err)
				continue
			}
			if evicted > 0 {
				slog.Info("evicted completed rounds", "count", evicted)
			}
		}
	}
}
