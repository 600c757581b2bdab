package main

import (
	"context"
	"log"

	"files-manager/internal/config"
	"files-manager/internal/database"
	"files-manager/internal/jobs"
	"files-manager/internal/logging"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the settings file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	handler := jobs.NewThumbnailHandler(database.NewStore(dbpool), logger)

	srv := jobs.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Worker.Concurrency, logger)

	logger.Info("Starting thumbnail worker", zap.Int("concurrency", cfg.Worker.Concurrency))
	// Run blocks until SIGTERM or SIGINT and then drains in-flight tasks.
	if err := srv.Run(jobs.NewMux(handler)); err != nil {
		logger.Fatal("Worker stopped", zap.Error(err))
	}
}
