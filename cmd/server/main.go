package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/scholarmcp/paperparse/internal/api"
	"github.com/scholarmcp/paperparse/internal/config"
	"github.com/scholarmcp/paperparse/internal/docparse"
	"github.com/scholarmcp/paperparse/internal/pipeline"
	"github.com/scholarmcp/paperparse/internal/stats"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	parseCfg := docparse.Config{
		RefMaxEntries:   cfg.RefMaxEntries,
		RefTailLines:    cfg.RefTailLines,
		RefMinLineChars: cfg.RefMinLineChars,
		AbstractLines:   cfg.AbstractLines,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize batch pipeline.
	orch := pipeline.NewOrchestrator(cfg, parseCfg, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, stats.New(time.Hour), log, cfg, parseCfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting paperparse", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
