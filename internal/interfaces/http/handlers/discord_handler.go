package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/interfaces/http/response"
)

type commandRegistrar interface {
	RegisterCommands(ctx context.Context) (int, error)
}

type DiscordHandler struct {
	registrar commandRegistrar
	secret    string
}

func NewDiscordHandler(registrar commandRegistrar, secret string) *DiscordHandler {
	return &DiscordHandler{registrar: registrar, secret: secret}
}

// RegisterCommands overwrites the bot's slash commands.
// GET /discord/register?secret=
func (h *DiscordHandler) RegisterCommands(c *gin.Context) {
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(c.Query("secret")), []byte(h.secret)) != 1 {
		response.Error(c, domainerrors.Unauthorized("Invalid secret"))
		return
	}

	count, err := h.registrar.RegisterCommands(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Commands registered", "count": count})
}
