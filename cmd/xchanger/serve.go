package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpRouter "xchanger/internal/adapter/http"
	"xchanger/pkg/logger"
	"xchanger/pkg/xchanger"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rates and tables over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, prometheus.DefaultRegisterer, nil, func() error {
				if port != 0 {
					a.cfg.Server.Port = port
				}
				return a.serve(cmd.Context())
			})
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from XCHANGER_SERVER_PORT)")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	log := a.log
	cfg := a.cfg
	log.Info("Starting exchange rate service")

	appMetrics := a.metrics
	proxy := a.proxy
	if proxy == "" {
		proxy = cfg.Defaults.Proxy
	}

	handler := httpRouter.NewHandler(a.client.Service(), proxy, log, appMetrics)
	router := httpRouter.NewRouter(handler, log, appMetrics, prometheus.DefaultGatherer)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	purgeCtx, cancelPurge := context.WithCancel(ctx)
	defer cancelPurge()
	go purgeExpired(purgeCtx, a.client, cfg.Cache.TTL, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		log.Error("HTTP server error", "error", err)
		return err
	case <-quit:
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	cancelPurge()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return err
	}

	log.Info("Server exited")
	return nil
}

// purgeExpired drops stale cached pages once per TTL.
func purgeExpired(ctx context.Context, client *xchanger.Client, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := client.PurgeExpired(ctx); err != nil {
				log.Error("Failed to purge expired responses", "error", err)
			}
		case <-ctx.Done():
			log.Info("Stopping cache purge goroutine")
			return
		}
	}
}
