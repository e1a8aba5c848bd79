package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/interfaces/http/response"
)

type teamService interface {
	List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, error)
	Create(ctx context.Context, input *entities.CreateTeamInput) (*entities.Team, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTeamInput) (*entities.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeamHandler struct {
	service teamService
}

func NewTeamHandler(service teamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// ListTeams returns every non-deleted team.
// GET /team/list?role_eq=ARTIST
func (h *TeamHandler) ListTeams(c *gin.Context) {
	var filter entities.TeamFilter
	if raw := strings.TrimSpace(c.Query("role_eq")); raw != "" {
		role := entities.TeamRole(strings.ToUpper(raw))
		if !role.Valid() {
			response.Error(c, domainerrors.BadRequest("Invalid role_eq"))
			return
		}
		filter.Role = &role
	}

	teams, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, teams, nil)
}

// CreateTeam creates a team.
// POST /team
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var input entities.CreateTeamInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	team, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, team)
}

// UpdateTeam applies a partial update.
// PATCH /team/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, err := pathUUID(c, "id", "team")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateTeamInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	team, err := h.service.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, team)
}

// DeleteTeam soft deletes a team.
// DELETE /team/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, err := pathUUID(c, "id", "team")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, gin.H{"id": id})
}
