package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the durable document store: the users and files collections.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
