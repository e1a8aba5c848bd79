package usecases

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/gateways"
)

var uploadFeatures = map[string]bool{"task": true, "project": true}

// UploadUsecase stores reference files for tasks and projects
type UploadUsecase struct {
	storage gateways.FileStorage
	now     func() time.Time
}

func NewUploadUsecase(storage gateways.FileStorage) *UploadUsecase {
	return &UploadUsecase{storage: storage, now: time.Now}
}

// Upload names the file "{feature}_{unixMillis}{ext}" and stores it.
func (u *UploadUsecase) Upload(ctx context.Context, feature, filename, contentType string, r io.Reader) (*gateways.StoredFile, error) {
	feature = strings.ToLower(strings.TrimSpace(feature))
	if !uploadFeatures[feature] {
		return nil, domainerrors.BadRequest("Invalid feature")
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	name := fmt.Sprintf("%s_%d%s", feature, u.now().UnixMilli(), ext)
	return u.storage.Save(ctx, name, contentType, r)
}
