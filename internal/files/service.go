// Package files implements the file record lifecycle: creation of folders
// and leaves, visibility toggles, listing and content retrieval.
package files

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"files-manager/internal/access"
	"files-manager/internal/apperr"
	"files-manager/internal/database"
	"files-manager/internal/models"
	"files-manager/internal/storage"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

const (
	PageSize = 20

	EventCreated     = "file.created"
	EventPublished   = "file.published"
	EventUnpublished = "file.unpublished"

	idLength        = 21
	maxIDRetries    = 10
	dispatchTimeout = 10 * time.Second
)

// ThumbnailWidths are the renditions generated for image records.
var ThumbnailWidths = []int{500, 250, 100}

type Store interface {
	CreateFile(ctx context.Context, arg database.CreateFileParams) (*models.File, error)
	GetFileByID(ctx context.Context, id string) (*models.File, error)
	FileExists(ctx context.Context, id string) (bool, error)
	ListFiles(ctx context.Context, userID int64, parent models.Parent, limit, offset int) ([]models.File, error)
	SetFilePublic(ctx context.Context, id string, isPublic bool) (*models.File, error)
}

type Blobs interface {
	Save(name string, data io.Reader) (string, error)
	Open(path string) (*os.File, error)
	Delete(path string) error
}

type ThumbnailQueue interface {
	EnqueueThumbnail(ctx context.Context, fileID string, userID int64) error
}

type Notifier interface {
	Notify(userID int64, event string, payload any)
}

type Service struct {
	store    Store
	blobs    Blobs
	queue    ThumbnailQueue
	notifier Notifier
	log      *zap.Logger
	newID    func() string
}

// NewService wires the lifecycle. queue and notifier may be nil.
func NewService(store Store, blobs Blobs, queue ThumbnailQueue, notifier Notifier, log *zap.Logger) (*Service, error) {
	generateID, err := nanoid.Standard(idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	return &Service{
		store:    store,
		blobs:    blobs,
		queue:    queue,
		notifier: notifier,
		log:      log,
		newID:    generateID,
	}, nil
}

type CreateParams struct {
	Name     string
	Type     models.Kind
	Parent   models.Parent
	IsPublic bool
	// Data is the base64 encoded content. Ignored for folders.
	Data string
}

// Create validates p and stores a new record owned by userID. Preconditions
// are checked in a fixed order so the reported failure is deterministic.
func (s *Service) Create(ctx context.Context, userID int64, p CreateParams) (*models.File, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperr.Validation("Missing name")
	}

	if !p.Type.Valid() {
		return nil, apperr.Validation("Missing type")
	}

	var content []byte
	if !p.Type.IsFolder() {
		if p.Data == "" {
			return nil, apperr.Validation("Missing data")
		}

		decoded, err := decodeData(p.Data)
		if err != nil {
			return nil, apperr.Validation("Missing data")
		}
		content = decoded
	}

	if !p.Parent.IsRoot() {
		parent, err := s.store.GetFileByID(ctx, p.Parent.ID())
		if err != nil {
			return nil, fmt.Errorf("lookup parent: %w", err)
		}
		if parent == nil || parent.UserID != userID {
			return nil, apperr.Validation("Parent not found")
		}
		if !parent.Type.IsFolder() {
			return nil, apperr.Validation("Parent is not a folder")
		}
	}

	id, err := s.generateUniqueID(ctx)
	if err != nil {
		return nil, err
	}

	params := database.CreateFileParams{
		ID:       id,
		UserID:   userID,
		Name:     p.Name,
		Type:     p.Type,
		IsPublic: p.IsPublic,
		Parent:   p.Parent,
	}

	if !p.Type.IsFolder() {
		path, err := s.blobs.Save(uuid.NewString(), bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("save content: %w", err)
		}
		params.LocalPath = path
	}

	file, err := s.store.CreateFile(ctx, params)
	if err != nil {
		if params.LocalPath != "" {
			if rmErr := s.blobs.Delete(params.LocalPath); rmErr != nil {
				s.log.Error("Failed to remove orphaned content",
					zap.String("path", params.LocalPath), zap.Error(rmErr))
			}
		}
		return nil, fmt.Errorf("insert file record: %w", err)
	}

	if file.Type == models.KindImage {
		s.dispatchThumbnail(file)
	}
	s.notify(file.UserID, EventCreated, file)

	return file, nil
}

func (s *Service) generateUniqueID(ctx context.Context) (string, error) {
	for i := 0; i < maxIDRetries; i++ {
		id := s.newID()
		exists, err := s.store.FileExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check for file existence: %w", err)
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxIDRetries)
}

// dispatchThumbnail enqueues the thumbnail job without holding up the
// caller. Failures are only logged.
func (s *Service) dispatchThumbnail(file *models.File) {
	if s.queue == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.queue.EnqueueThumbnail(ctx, file.ID, file.UserID); err != nil {
			s.log.Error("Failed to enqueue thumbnail job",
				zap.String("file_id", file.ID), zap.Int64("user_id", file.UserID), zap.Error(err))
		}
	}()
}

func (s *Service) notify(userID int64, event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(userID, event, payload)
	}
}

func (s *Service) getChecked(ctx context.Context, req access.Requester, id string, op access.Op) (*models.File, error) {
	file, err := s.store.GetFileByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup file: %w", err)
	}

	if err := access.Check(req, file, op); err != nil {
		var denied *access.Denied
		if errors.As(err, &denied) {
			s.log.Debug("File access denied", zap.String("file_id", id), zap.Stringer("reason", denied.Reason))
		}
		return nil, err
	}

	return file, nil
}

// Get returns the record when req may read it.
func (s *Service) Get(ctx context.Context, req access.Requester, id string) (*models.File, error) {
	return s.getChecked(ctx, req, id, access.OpRead)
}

// List returns one page of the user's records directly under parent.
// Negative pages are treated as the first page.
func (s *Service) List(ctx context.Context, userID int64, parent models.Parent, page int) ([]models.File, error) {
	if page < 0 {
		page = 0
	}

	files, err := s.store.ListFiles(ctx, userID, parent, PageSize, page*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

// SetPublic changes the visibility of a record owned by req. Setting the
// current value again succeeds without writing.
func (s *Service) SetPublic(ctx context.Context, req access.Requester, id string, isPublic bool) (*models.File, error) {
	file, err := s.getChecked(ctx, req, id, access.OpWrite)
	if err != nil {
		return nil, err
	}

	if file.IsPublic == isPublic {
		return file, nil
	}

	updated, err := s.store.SetFilePublic(ctx, id, isPublic)
	if err != nil {
		return nil, fmt.Errorf("update visibility: %w", err)
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}

	event := EventUnpublished
	if isPublic {
		event = EventPublished
	}
	s.notify(updated.UserID, event, updated)

	return updated, nil
}

// Content is an open stored file. The caller closes Data.
type Content struct {
	File *models.File
	Data *os.File
}

// Content opens the bytes of a record, or of its width-wide thumbnail when
// size is not empty.
func (s *Service) Content(ctx context.Context, req access.Requester, id, size string) (*Content, error) {
	file, err := s.getChecked(ctx, req, id, access.OpRead)
	if err != nil {
		return nil, err
	}

	if file.Type.IsFolder() {
		return nil, apperr.ErrFolderContent
	}

	path := file.LocalPath
	if size != "" {
		width, err := parseWidth(size)
		if err != nil {
			return nil, err
		}
		path = storage.VariantPath(path, width)
	}

	data, err := s.blobs.Open(path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("open content: %w", err)
	}

	return &Content{File: file, Data: data}, nil
}

var dataEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeData accepts standard and URL-safe base64, padded or not.
func decodeData(data string) ([]byte, error) {
	var err error
	for _, enc := range dataEncodings {
		var decoded []byte
		if decoded, err = enc.DecodeString(data); err == nil {
			return decoded, nil
		}
	}
	return nil, err
}

func parseWidth(size string) (int, error) {
	width, err := strconv.Atoi(size)
	if err == nil {
		for _, w := range ThumbnailWidths {
			if w == width {
				return width, nil
			}
		}
	}
	return 0, apperr.Validation("Invalid size")
}
