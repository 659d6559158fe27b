package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/spf13/cobra"

	"mdkb/internal/http"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the knowledge base API",
		Long:  `Starts the HTTP API on the configured port and stops cleanly on interrupt.`,
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			if port == "" {
				port = env.Config.APIPort
			}

			router := http.NewRouter(&http.Deps{
				Service: env.Service,
				Store:   env.Store,
			})
			server := &nethttp.Server{
				Addr:              ":" + port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), server)
		}),
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to the configured API port)")
	return serveCmd
}

// runServer serves until ctx is cancelled, then shuts the server down.
func runServer(ctx context.Context, server *nethttp.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}
