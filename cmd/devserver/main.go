package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/moviebook/internal/devserver"
	"github.com/dmitrijs2005/moviebook/internal/devserver/config"
	"github.com/dmitrijs2005/moviebook/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	logger := logging.New(os.Stdout, cfg.LogLevel)

	store := devserver.NewStore()
	if cfg.SeedDemo {
		if err := devserver.Seed(store); err != nil {
			log.Fatalf("%v", err)
		}
		logger.Info(ctx, "demo accounts created",
			"admin", devserver.DemoAdminEmail, "user", devserver.DemoUserEmail)
	}

	if err := devserver.NewServer(cfg, store, logger).Run(ctx); err != nil {
		logger.Error(ctx, "dev server stopped", "error", err)
		os.Exit(1)
	}
}
