package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"studio-ops.backend/internal/domain/gateways"
)

// LocalStorage writes uploads under a directory served at /uploads
type LocalStorage struct {
	dir       string
	publicURL string
}

func NewLocalStorage(dir, publicURL string) *LocalStorage {
	return &LocalStorage{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *LocalStorage) Save(_ context.Context, name, _ string, r io.Reader) (*gateways.StoredFile, error) {
	name = filepath.Base(name)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	path := "/uploads/" + name
	return &gateways.StoredFile{Path: path, URL: s.publicURL + path}, nil
}
