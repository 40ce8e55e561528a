package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage writes uploads to a directory on disk. The router serves the
// directory under publicPath so stored URLs stay stable.
type LocalStorage struct {
	baseDir    string
	publicPath string
}

func NewLocalStorage(baseDir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		baseDir:    baseDir,
		publicPath: publicPath,
	}, nil
}

func (s *LocalStorage) Save(_ context.Context, folder, filename, _ string, _ int64, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicPath, folder, name), nil
}
