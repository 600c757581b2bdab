package database

import (
	"context"
	"errors"

	"files-manager/internal/models"

	"github.com/jackc/pgx/v5"
)

const fileColumns = `id, user_id, name, type, is_public, parent_id, local_path, created_at`

type CreateFileParams struct {
	ID        string
	UserID    int64
	Name      string
	Type      models.Kind
	IsPublic  bool
	Parent    models.Parent
	LocalPath string
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanFile(row pgx.Row) (*models.File, error) {
	var (
		file      models.File
		parentID  *string
		localPath *string
	)

	err := row.Scan(
		&file.ID,
		&file.UserID,
		&file.Name,
		&file.Type,
		&file.IsPublic,
		&parentID,
		&localPath,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		file.Parent = models.ParentOf(*parentID)
	}
	if localPath != nil {
		file.LocalPath = *localPath
	}

	return &file, nil
}

func (s *Store) CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	query := `
		INSERT INTO files (id, user_id, name, type, is_public, parent_id, local_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + fileColumns

	row := s.pool.QueryRow(ctx, query,
		arg.ID,
		arg.UserID,
		arg.Name,
		arg.Type,
		arg.IsPublic,
		nullable(arg.Parent.ID()),
		nullable(arg.LocalPath),
	)

	return scanFile(row)
}

// GetFileByID returns nil, nil when no record has the id.
func (s *Store) GetFileByID(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	file, err := scanFile(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return file, nil
}

func (s *Store) FileExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM files WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// ListFiles returns the owner's records directly under parent in insertion
// order.
func (s *Store) ListFiles(ctx context.Context, userID int64, parent models.Parent, limit, offset int) ([]models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE user_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		ORDER BY seq
		LIMIT $3 OFFSET $4
	`
	rows, err := s.pool.Query(ctx, query, userID, nullable(parent.ID()), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// SetFilePublic returns nil, nil when no record has the id.
func (s *Store) SetFilePublic(ctx context.Context, id string, isPublic bool) (*models.File, error) {
	query := `UPDATE files SET is_public = $2 WHERE id = $1 RETURNING ` + fileColumns

	file, err := scanFile(s.pool.QueryRow(ctx, query, id, isPublic))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return file, nil
}

func (s *Store) CountFiles(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM files`).Scan(&n)
	return n, err
}
