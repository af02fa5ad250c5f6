package main

import (
	"context"
	"os"

	"library-backend/internal/config"
	"library-backend/pkg/container"
	"library-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("🚀 Starting "+cfg.App.Name, map[string]interface{}{
		"version": cfg.App.Version,
		"env":     cfg.App.Environment,
		"port":    cfg.App.Port,
	})

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize container", err)
		os.Exit(1)
	}
	defer c.Close()

	srv := NewServer(c)
	if err := srv.Serve(); err != nil {
		logger.Error("server stopped with error", err)
		os.Exit(1)
	}
}
