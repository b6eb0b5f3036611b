package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"etherlink/infrastructure/di"
)

func serveCMD(load loader) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and relay changes made by other processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), load, func(ctx context.Context, c *di.Container) error {
				if addr != "" {
					c.Config.Server.Address = addr
				}
				return serve(ctx, c)
			})
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return serve
}

func serve(ctx context.Context, c *di.Container) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              c.Config.Server.Address,
		Handler:           c.Router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// Event streams end with the server context rather than a write timeout
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		c.Logger.Info("Starting server",
			zap.String("address", srv.Addr),
			zap.String("environment", c.Config.Environment),
			zap.String("storage", c.Config.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return c.Bus.RelayExternal(gctx, c.ExternalChanges())
	})

	g.Go(func() error {
		<-gctx.Done()
		c.Logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.Config.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	c.Logger.Info("Server stopped", zap.Error(err))
	return err
}
