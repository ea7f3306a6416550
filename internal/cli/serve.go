package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/recall/internal/reminder"
	"github.com/conorfennell/recall/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().Bool("remind", false, "log a digest of due decks periodically")
	cmd.Flags().Int("max-cards", 0, "cap on cards per due queue (0 means no cap)")
	return cmd
}

// serve runs the API until ctx is cancelled, then shuts down gracefully.
func (a *app) serve(ctx context.Context) error {
	if a.cfg.Reminder.Enabled {
		r := reminder.New(a.study, nil, a.cfg.Reminder.Every)
		if err := r.Start(); err != nil {
			return err
		}
		defer r.Stop()
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           web.NewServer(a.db, a.study),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("recall serving", "addr", a.cfg.Server.Addr, "db", a.cfg.Database.Path)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
