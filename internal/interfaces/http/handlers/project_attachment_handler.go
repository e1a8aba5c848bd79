package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/interfaces/http/response"
)

type projectAttachmentService interface {
	List(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectAttachment, error)
	Create(ctx context.Context, projectID uuid.UUID, url string) (*entities.ProjectAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectAttachmentHandler struct {
	service projectAttachmentService
}

func NewProjectAttachmentHandler(service projectAttachmentService) *ProjectAttachmentHandler {
	return &ProjectAttachmentHandler{service: service}
}

// ListAttachments returns a project's reference files, newest first.
// GET /project-attachments/:projectId
func (h *ProjectAttachmentHandler) ListAttachments(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Error(c, err)
		return
	}

	attachments, err := h.service.List(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"docs": attachments})
}

// CreateAttachment links an uploaded file to a project.
// POST /project-attachments
func (h *ProjectAttachmentHandler) CreateAttachment(c *gin.Context) {
	var input struct {
		ProjectID uuid.UUID `json:"projectId" binding:"required"`
		URL       string    `json:"url" binding:"required"`
	}
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	attachment, err := h.service.Create(c.Request.Context(), input.ProjectID, input.URL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"doc": attachment})
}

// DeleteAttachment removes one project attachment.
// DELETE /project-attachments/:attachmentId
func (h *ProjectAttachmentHandler) DeleteAttachment(c *gin.Context) {
	id, err := pathUUID(c, "attachmentId", "attachment")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
