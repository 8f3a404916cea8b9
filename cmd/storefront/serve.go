package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bookshelf/storefront/internal/api"
	"github.com/bookshelf/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if port == "" {
				port = a.cfg.Port
			}

			// The session is restored before the listener opens, so no
			// request ever observes the loading state.
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			e := api.NewRouter(api.Deps{
				Storefront: rt.sf,
				Log:        logger.Component("http"),
				Checks:     rt.checks,
				Registry:   prometheus.NewRegistry(),
			})

			a.log.Info().
				Str("port", port).
				Str("backend", rt.client.BaseURL()).
				Str("session_store", a.cfg.Session.Store).
				Bool("authenticated", rt.sf.Session.IsAuthenticated()).
				Msg("gateway starting")

			return run(ctx, e, ":"+port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $PORT)")
	return cmd
}

// run serves e until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	return e.Shutdown(shutdownCtx)
}
