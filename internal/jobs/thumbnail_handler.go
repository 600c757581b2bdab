package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"files-manager/internal/files"
	"files-manager/internal/models"
	"files-manager/internal/storage"
	"files-manager/internal/thumbnail"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var (
	ErrMissingFileID = errors.New("Missing fileId")
	ErrMissingUserID = errors.New("Missing userId")
	ErrFileNotFound  = errors.New("File not found")
)

type FileFinder interface {
	GetFileByID(ctx context.Context, id string) (*models.File, error)
}

type ThumbnailHandler struct {
	files    FileFinder
	log      *zap.Logger
	generate func(src, dst string, width int) error
}

func NewThumbnailHandler(files FileFinder, log *zap.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		files:    files,
		log:      log,
		generate: thumbnail.Generate,
	}
}

// ProcessTask renders every thumbnail width next to the stored image. A
// failed width does not stop the others.
func (h *ThumbnailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p ThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	if p.FileID == "" {
		return fmt.Errorf("%w: %w", ErrMissingFileID, asynq.SkipRetry)
	}
	if p.UserID == 0 {
		return fmt.Errorf("%w: %w", ErrMissingUserID, asynq.SkipRetry)
	}

	log := h.log.With(zap.String("file_id", p.FileID), zap.Int64("user_id", p.UserID))

	file, err := h.files.GetFileByID(ctx, p.FileID)
	if err != nil {
		return fmt.Errorf("lookup file: %w", err)
	}
	if file == nil || file.UserID != p.UserID || file.LocalPath == "" {
		return fmt.Errorf("%w: %w", ErrFileNotFound, asynq.SkipRetry)
	}

	var errs []error
	for _, width := range files.ThumbnailWidths {
		dst := storage.VariantPath(file.LocalPath, width)
		if err := h.generate(file.LocalPath, dst, width); err != nil {
			log.Error("Thumbnail generation failed", zap.Int("width", width), zap.Error(err))
			errs = append(errs, fmt.Errorf("width %d: %w", width, err))
			continue
		}
		log.Debug("Thumbnail written", zap.Int("width", width), zap.String("path", dst))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errors.Join(errs...), asynq.SkipRetry)
	}

	log.Info("Thumbnails generated")
	return nil
}
