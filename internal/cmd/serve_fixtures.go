package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harrison/verifier/internal/fixture"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// NewServeFixturesCommand creates and returns the serve-fixtures subcommand
func NewServeFixturesCommand() *cobra.Command {
	var (
		addr  string
		token string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "serve-fixtures",
		Short: "Serve the bundled mock data as a GitHub-style API",
		Long: `Serve the bundled mock data over HTTP using the same paths as the
GitHub REST API, so verify can run online against it:

  verifier serve-fixtures --addr :8089 &
  MCP_GITHUB_TOKEN=x verifier verify --base-url http://localhost:8089

With --token, requests must carry "Authorization: token <value>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []fixture.ServerOption{fixture.WithToken(token)}
			if !quiet {
				opts = append(opts, fixture.WithRequestLog())
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           fixture.NewRouter(fixture.Sample(), opts...),
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving fixtures on %s\n", addr)
			return serve(cmd.Context(), srv)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&addr, "addr", ":8089", "Listen address")
	cmd.Flags().StringVar(&token, "token", "", "Require this API token")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not log requests")

	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	if ctx == nil {
		ctx = context.Background()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("fixture server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("fixture server shutdown: %w", err)
		}
		return nil
	}
}
