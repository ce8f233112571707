package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/InventoryRestore_Go/internal/bootstrap"
	"github.com/osse101/InventoryRestore_Go/internal/config"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx := context.Background()
	rt, err := bootstrap.NewRuntime(ctx, cfg, headlessHost{})
	if err != nil {
		logger.Error("Failed to start runtime", "error", err)
		os.Exit(1)
	}
	rt.StartRetention(ctx)

	// Wait here until CTRL-C or other term signal is received.
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sc
	logger.Info("Received signal", "signal", sig.String())

	if err := bootstrap.GracefulShutdown(ctx, rt); err != nil {
		logger.Error("Shutdown finished with errors", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}
