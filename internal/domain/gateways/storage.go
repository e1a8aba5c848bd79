package gateways

import (
	"context"
	"io"
)

// StoredFile is where an upload ended up
type StoredFile struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// FileStorage persists uploaded files
type FileStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (*StoredFile, error)
}
