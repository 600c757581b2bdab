package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

type Producer struct {
	client *asynq.Client
}

func NewProducer(opt asynq.RedisConnOpt) *Producer {
	return &Producer{client: asynq.NewClient(opt)}
}

func (p *Producer) EnqueueThumbnail(ctx context.Context, fileID string, userID int64) error {
	task, err := NewThumbnailTask(fileID, userID)
	if err != nil {
		return err
	}

	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue thumbnail task: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.client.Close()
}
