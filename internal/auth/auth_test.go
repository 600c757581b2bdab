package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"files-manager/internal/apperr"
	"files-manager/internal/models"

	"github.com/stretchr/testify/require"
)

func basic(s string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(s))
}

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)

	other, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEqual(t, hash, other, "hashes should be salted")
}

func TestPasswordHash_LongPasswords(t *testing.T) {
	long := strings.Repeat("a", 73)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(long, hash))
	require.False(t, CheckPasswordHash(long[:72], hash), "bytes past 72 must still count")
	require.False(t, CheckPasswordHash(long+"a", hash))
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(password, hash), "Password should match the hash")
	require.False(t, CheckPasswordHash("wrongPassword", hash), "Wrong password should not match the hash")
}

func TestParseBasic(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		email    string
		password string
		ok       bool
	}{
		{"valid", basic("bob@dylan.com:toto1234!"), "bob@dylan.com", "toto1234!", true},
		{"colon in password", basic("bob@dylan.com:a:b"), "bob@dylan.com", "a:b", true},
		{"lowercase scheme", "basic " + base64.StdEncoding.EncodeToString([]byte("a:b")), "a", "b", true},
		{"empty header", "", "", "", false},
		{"wrong scheme", "Bearer " + base64.StdEncoding.EncodeToString([]byte("a:b")), "", "", false},
		{"not base64", "Basic ###", "", "", false},
		{"no colon", basic("bob@dylan.com"), "", "", false},
		{"empty email", basic(":secret"), "", "", false},
		{"empty password", basic("bob@dylan.com:"), "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, password, ok := ParseBasic(tt.header)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.email, email)
			require.Equal(t, tt.password, password)
		})
	}
}

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

func TestVerifier(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	alice := &models.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}
	v := NewVerifier(&fakeUsers{users: map[string]*models.User{alice.Email: alice}})
	ctx := context.Background()

	user, err := v.Verify(ctx, basic("alice@example.com:secret1"))
	require.NoError(t, err)
	require.Equal(t, alice.ID, user.ID)

	failures := map[string]string{
		"wrong password": basic("alice@example.com:secret2"),
		"unknown email":  basic("bob@example.com:secret1"),
		"email case":     basic("Alice@example.com:secret1"),
		"malformed":      "Basic !!!",
		"missing":        "",
	}
	for name, header := range failures {
		t.Run(name, func(t *testing.T) {
			user, err := v.Verify(ctx, header)
			require.Nil(t, user)
			require.ErrorIs(t, err, apperr.ErrUnauthorized)
		})
	}
}

func TestVerifierStoreError(t *testing.T) {
	boom := errors.New("connection refused")
	v := NewVerifier(&fakeUsers{err: boom})

	_, err := v.Verify(context.Background(), basic("alice@example.com:secret1"))
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, apperr.ErrUnauthorized)
}
