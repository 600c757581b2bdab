package auth

import (
	"context"
	"fmt"

	"files-manager/internal/apperr"
	"files-manager/internal/models"
)

type UserFinder interface {
	// GetUserByEmail returns nil, nil when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Verifier struct {
	users UserFinder
}

func NewVerifier(users UserFinder) *Verifier {
	return &Verifier{users: users}
}

// Verify checks a Basic Authorization header against the stored password
// digests. Malformed headers, unknown emails and wrong passwords all return
// apperr.ErrUnauthorized.
func (v *Verifier) Verify(ctx context.Context, header string) (*models.User, error) {
	email, password, ok := ParseBasic(header)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}

	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user == nil {
		CheckPasswordHash(password, dummyHash())
		return nil, apperr.ErrUnauthorized
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.ErrUnauthorized
	}

	return user, nil
}
