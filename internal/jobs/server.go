package jobs

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewServer builds the asynq server consuming the thumbnails queue.
func NewServer(opt asynq.RedisConnOpt, concurrency int, log *zap.Logger) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueThumbnails: 1},
		Logger:      log.Sugar(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error("Job failed",
				zap.String("type", task.Type()),
				zap.ByteString("payload", task.Payload()),
				zap.Error(err))
		}),
	})
}

func NewMux(thumbnails *ThumbnailHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeThumbnail, thumbnails)
	return mux
}
