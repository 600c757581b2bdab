// @title           Files Manager API
// @version         1.0
// @description     Users upload files and folders, share them publicly and fetch image thumbnails.
// @host            localhost:5000
// @schemes         http
// @BasePath        /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name X-Token
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"files-manager/internal/api"
	"files-manager/internal/auth"
	"files-manager/internal/config"
	"files-manager/internal/database"
	"files-manager/internal/files"
	"files-manager/internal/jobs"
	"files-manager/internal/logging"
	"files-manager/internal/session"
	"files-manager/internal/storage"
	"files-manager/internal/websocket"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("Connected to database")

	if err := database.Migrate(ctx, dbpool); err != nil {
		return err
	}

	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	logger.Info("Storing files", zap.String("path", cfg.Storage.Path))

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		return err
	}
	defer sessionStore.Close()
	logger.Info("Session store ready", zap.String("backend", cfg.Session.Backend))

	producer := jobs.NewProducer(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer producer.Close()

	wsHub := websocket.NewHub(logger)
	go wsHub.Run(ctx)

	store := database.NewStore(dbpool)

	fileService, err := files.NewService(store, localStorage, producer, wsHub, logger)
	if err != nil {
		return err
	}

	server := api.NewServer(store, session.NewManager(sessionStore), auth.NewVerifier(store), fileService, wsHub, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.Session.Backend == config.SessionBackendMemory {
		return session.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return session.NewRedisStore(client), nil
}
