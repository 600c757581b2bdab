package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"files-manager/internal/apperr"

	"github.com/google/uuid"
)

const (
	TokenTTL  = 24 * time.Hour
	keyPrefix = "auth_"

	maxIssueAttempts = 3
)

type Manager struct {
	store Store
	ttl   time.Duration
	newID func() string
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		ttl:   TokenTTL,
		newID: uuid.NewString,
	}
}

func key(token string) string {
	return keyPrefix + token
}

// Issue mints a fresh token for userID. Existing tokens of the user stay
// valid.
func (m *Manager) Issue(ctx context.Context, userID int64) (string, error) {
	for range maxIssueAttempts {
		token := m.newID()

		ok, err := m.store.SetNX(ctx, key(token), strconv.FormatInt(userID, 10), m.ttl)
		if err != nil {
			return "", fmt.Errorf("store session: %w", err)
		}
		if ok {
			return token, nil
		}
	}

	return "", fmt.Errorf("failed to issue a unique token after %d attempts", maxIssueAttempts)
}

// Resolve returns the user a token belongs to. It does not extend the
// token's lifetime.
func (m *Manager) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, apperr.ErrUnauthorized
	}

	val, err := m.store.Get(ctx, key(token))
	if errors.Is(err, ErrKeyNotFound) {
		return 0, apperr.ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("read session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, apperr.ErrUnauthorized
	}

	return userID, nil
}

// Revoke deletes a token. Revoking an unknown, expired or already revoked
// token fails with apperr.ErrUnauthorized.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return apperr.ErrUnauthorized
	}

	deleted, err := m.store.Delete(ctx, key(token))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !deleted {
		return apperr.ErrUnauthorized
	}

	return nil
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
