package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	require.NoError(t, Migrate(context.Background(), testPool))
}

func TestMigratePropagatesErrors(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	boom := errors.New("boom")
	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		require.Equal(t, "migrations", dir)
		return boom
	}

	require.ErrorIs(t, Migrate(context.Background(), testPool), boom)
}
