package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"library-backend/internal/config"
	lendingjob "library-backend/internal/domains/lending/job"
	lendingrepo "library-backend/internal/domains/lending/repository"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/infrastructure/queue"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("⚙️  Starting worker", map[string]interface{}{
		"env": cfg.App.Environment,
	})

	ctx := context.Background()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		logger.Error("failed to connect to postgres", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := lendingrepo.NewPostgresLendingRepository(db.Pool)
	emailSvc := email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	handlers := lendingjob.NewHandlers(repo, emailSvc)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Host, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		asynq.Config{
			Concurrency: 20,
			Queues: map[string]int{
				"high":    20,
				"default": 10,
				"low":     5,
			},
		},
	)

	mux := asynq.NewServeMux()
	handlers.Register(mux)

	scheduler := queue.NewScheduler(cfg.Redis.Host)
	if err := scheduler.RegisterLendingJobs(); err != nil {
		logger.Error("failed to register scheduled jobs", err)
		os.Exit(1)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := srv.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := scheduler.Start(); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("worker stopped with error", err)
	case sig := <-quit:
		logger.Info("🛑 Shutting down worker", map[string]interface{}{"signal": sig.String()})
	}

	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("✅ Worker stopped cleanly", nil)
}
