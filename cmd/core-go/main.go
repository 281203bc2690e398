package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wifi_locator/core-go/internal/config"
	"wifi_locator/core-go/internal/discovery"
	"wifi_locator/core-go/internal/httpapi"
	"wifi_locator/core-go/internal/metrics"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", ""), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := httpapi.NewLogger("info")
		bootLog.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}

	logger := httpapi.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	svc := discovery.New(logger, cfg.DiscoveryOptions(), m)
	if !svc.Ready() {
		logger.Warn().Str("goos", svc.GOOS()).Msg("no enabled adapter applies to this platform; scans will only return diagnostics")
	}

	h := httpapi.NewHandler(logger, svc, m)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTP.Addr).Str("preset", cfg.Scan.Preset).Msg("core-go listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("shutdown complete")
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
