package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/interfaces/http/response"
)

type authService interface {
	VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
}

// AuthHandler handles email verification and login
type AuthHandler struct {
	service authService
}

func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Verify allows an email to log in when the shared secret matches.
// POST /auth/google/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var input entities.VerifyEmailInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.VerifyEmail(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"doc": user})
}

// Login issues an access token for a verified email.
// POST /auth/google
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"doc": auth})
}
