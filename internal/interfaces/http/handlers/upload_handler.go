package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/internal/interfaces/http/response"
)

// MaxUploadSize bounds the multipart body
const MaxUploadSize = 20 << 20

type uploadService interface {
	Upload(ctx context.Context, feature, filename, contentType string, r io.Reader) (*gateways.StoredFile, error)
}

type UploadHandler struct {
	service uploadService
}

func NewUploadHandler(service uploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload stores a task or project reference file.
// POST /upload (multipart: file, forFeature)
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("File is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("File is unreadable"))
		return
	}
	defer file.Close()

	stored, err := h.service.Upload(
		c.Request.Context(),
		c.PostForm("forFeature"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"doc": stored})
}
