package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Telemetry
	shutdownOps, err := initTelemetry(ctx, cfg)
	if err != nil {
		panic(err)
	}

	// Router
	router := server.NewRouter()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.HTTPAddr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	shutdownOps["http-server"] = srv.Shutdown

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, shutdownOps)

	exitCode := <-wait
	observability.Logger.Info("server stopped", zap.Int("exit_code", exitCode))
	observability.SyncLogger()
	os.Exit(exitCode)
}
