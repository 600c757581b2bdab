package api

import (
	"context"

	"files-manager/internal/auth"
	"files-manager/internal/files"
	"files-manager/internal/models"
	"files-manager/internal/session"
	"files-manager/internal/websocket"

	"go.uber.org/zap"
)

// Store is the part of the document store the handlers use directly.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountFiles(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type Server struct {
	store    Store
	sessions *session.Manager
	verifier *auth.Verifier
	files    *files.Service
	wsHub    *websocket.Hub
	log      *zap.Logger
}

func NewServer(store Store, sessions *session.Manager, verifier *auth.Verifier, files *files.Service, wsHub *websocket.Hub, log *zap.Logger) *Server {
	return &Server{
		store:    store,
		sessions: sessions,
		verifier: verifier,
		files:    files,
		wsHub:    wsHub,
		log:      log,
	}
}
