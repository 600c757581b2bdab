// Package jobs carries background work between the API server and the
// worker over an asynq queue backed by Redis.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeThumbnail   = "thumbnail:generate"
	QueueThumbnails = "thumbnails"
)

type ThumbnailPayload struct {
	FileID string `json:"fileId"`
	UserID int64  `json:"userId"`
}

// NewThumbnailTask builds a task that is never retried.
func NewThumbnailTask(fileID string, userID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ThumbnailPayload{FileID: fileID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeThumbnail, payload, asynq.Queue(QueueThumbnails), asynq.MaxRetry(0)), nil
}
