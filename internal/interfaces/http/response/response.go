package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Doc wraps a single resource as {"data": {"doc": ...}}.
func Doc(c *gin.Context, status int, doc interface{}) {
	c.JSON(status, gin.H{"data": gin.H{"doc": doc}})
}

// Docs wraps a list as {"data": {"docs": ..., "pagination": ...}}.
func Docs(c *gin.Context, docs interface{}, pagination interface{}) {
	body := gin.H{"docs": docs}
	if pagination != nil {
		body["pagination"] = pagination
	}
	c.JSON(http.StatusOK, gin.H{"data": body})
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.As(err)
	if !ok {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			appErr = domainerrors.NotFound(err.Error())
		case errors.Is(err, domainerrors.ErrInvalidTransition), errors.Is(err, domainerrors.ErrConflict):
			appErr = domainerrors.Conflict(err.Error())
		default:
			appErr = domainerrors.InternalError(err)
		}
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
