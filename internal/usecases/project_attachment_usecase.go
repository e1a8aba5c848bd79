package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/utils"
)

type ProjectAttachmentUsecase struct {
	attachmentRepo repositories.ProjectAttachmentRepository
	projectRepo    repositories.ProjectRepository
}

func NewProjectAttachmentUsecase(attachmentRepo repositories.ProjectAttachmentRepository, projectRepo repositories.ProjectRepository) *ProjectAttachmentUsecase {
	return &ProjectAttachmentUsecase{attachmentRepo: attachmentRepo, projectRepo: projectRepo}
}

func (u *ProjectAttachmentUsecase) List(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectAttachment, error) {
	return u.attachmentRepo.ListByProject(ctx, projectID)
}

func (u *ProjectAttachmentUsecase) Create(ctx context.Context, projectID uuid.UUID, url string) (*entities.ProjectAttachment, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domainerrors.BadRequest("URL is required")
	}
	if _, err := u.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, notFoundAs(err, "Project not found")
	}
	attachment := &entities.ProjectAttachment{
		ID:        utils.GenerateUUIDv7(),
		ProjectID: projectID,
		URL:       url,
	}
	if err := u.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (u *ProjectAttachmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := u.attachmentRepo.GetByID(ctx, id); err != nil {
		return notFoundAs(err, "Attachment not found")
	}
	return notFoundAs(u.attachmentRepo.Delete(ctx, id), "Attachment not found")
}
