package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"smart-email-sender/internal/shared/server"
	"smart-email-sender/internal/shared/telemetry"
)

const shutdownTimeout = 10 * time.Second

// Run serves the router until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              server.Addr(a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	telemetry.Info("server.stop", map[string]any{"addr": srv.Addr})
	return srv.Shutdown(shutdownCtx)
}
