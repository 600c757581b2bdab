package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrNotFound = errors.New("stored file not found")

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (ls *LocalStorage) pathFromName(name string) string {
	return filepath.Join(ls.basePath, filepath.Base(name))
}

// Save writes data under name and returns the absolute location. The file
// only appears under its final name once fully written.
func (ls *LocalStorage) Save(name string, data io.Reader) (string, error) {
	filePath := ls.pathFromName(name)

	tmp, err := os.CreateTemp(ls.basePath, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

// Open opens a location previously returned by Save, or one of its
// variants.
func (ls *LocalStorage) Open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// VariantPath is the location of the width-wide rendition of path.
func VariantPath(path string, width int) string {
	return fmt.Sprintf("%s_%d", path, width)
}
