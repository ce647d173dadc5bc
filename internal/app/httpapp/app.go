package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"prop_search/internal/config"
)

// App — обёртка над HTTP-сервером с жизненным циклом Run/Stop.
type App struct {
	log    *slog.Logger
	server *http.Server
	port   int
}

func New(log *slog.Logger, handler http.Handler, cfg config.HTTPConfig) *App {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		log:    log,
		server: server,
		port:   cfg.Port,
	}
}

// MustRun запускает сервер и паникует при ошибке.
func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

// Run блокируется до остановки сервера.
func (a *App) Run() error {
	const op = "httpapp.Run"

	a.log.With(slog.String("op", op)).
		Info("http server started", slog.Int("port", a.port))

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stop останавливает сервер, дожидаясь активных запросов.
func (a *App) Stop(ctx context.Context) {
	const op = "httpapp.Stop"

	a.log.With(slog.String("op", op)).
		Info("stopping http server", slog.Int("port", a.port))

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("http server shutdown failed", slog.String("op", op), slog.String("error", err.Error()))
	}
}
