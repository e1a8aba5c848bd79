package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage "github.com/supabase-community/storage-go"
	"studio-ops.backend/internal/domain/gateways"
)

// SupabaseStorage uploads into a public Supabase storage bucket
type SupabaseStorage struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewSupabaseStorage(supabaseURL, serviceRoleKey, bucket string) *SupabaseStorage {
	baseURL := strings.TrimRight(supabaseURL, "/")
	return &SupabaseStorage{
		client:  storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *SupabaseStorage) Save(_ context.Context, name, contentType string, r io.Reader) (*gateways.StoredFile, error) {
	upsert := true
	opts := storage.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := s.client.UploadFile(s.bucket, name, r, opts); err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	return &gateways.StoredFile{Path: name, URL: s.PublicURL(name)}, nil
}

func (s *SupabaseStorage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}
