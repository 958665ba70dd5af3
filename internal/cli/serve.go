package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/FunnySam/runelite/pkg/inspect"
)

const (
	defaultServeAddr = "127.0.0.1:8089"
	shutdownTimeout  = 5 * time.Second
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <manifest.toml>",
		Short: "Serve a read-only JSON view of the overlays in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, store, err := c.openRegistry(ctx, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Serving %d overlays on http://%s", reg.Len(), ln.Addr())
			return serve(ctx, ln, inspect.NewServer(reg, c.Logger))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	return cmd
}

// serve runs h on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	loggerFromContext(ctx).Debug("inspect server stopped")
	return nil
}
