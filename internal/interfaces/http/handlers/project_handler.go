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
	"studio-ops.backend/pkg/utils"
)

type projectService interface {
	List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, utils.ListMeta, error)
	Create(ctx context.Context, input *entities.CreateProjectInput) (*entities.Project, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error)
	Delete(ctx context.Context, id uuid.UUID, deleteThread bool) error
}

type ProjectHandler struct {
	service projectService
}

func NewProjectHandler(service projectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects returns a page of projects.
// GET /project/list?id_eq=&team_id_eq=&status_eq=&is_paid_eq=&created_at_gte=&created_at_lte=&skip=&limit=&with=team&sort=created_at:desc
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filter, err := projectFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	projects, meta, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, projects, meta)
}

func projectFilterFromQuery(c *gin.Context) (entities.ProjectFilter, error) {
	var (
		filter entities.ProjectFilter
		err    error
	)
	if filter.ID, err = queryUUID(c, "id_eq"); err != nil {
		return filter, err
	}
	if filter.TeamID, err = queryUUID(c, "team_id_eq"); err != nil {
		return filter, err
	}
	if filter.IsPaid, err = queryBool(c, "is_paid_eq"); err != nil {
		return filter, err
	}
	if filter.CreatedAtGTE, err = queryTime(c, "created_at_gte"); err != nil {
		return filter, err
	}
	if filter.CreatedAtLTE, err = queryTime(c, "created_at_lte"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(c.Query("status_eq")); raw != "" {
		status := entities.ProjectStatus(strings.ToUpper(raw))
		if !status.Valid() {
			return filter, domainerrors.BadRequest("Invalid status_eq")
		}
		filter.Status = &status
	}

	with := withSet(c)
	filter.WithTeam = with["team"]
	filter.WithPayroll = with["payroll"]
	filter.WithOffering = with["offering"]
	filter.Page = listParams(c)
	return filter, nil
}

// CreateProject creates a project with its tasks; published projects are offered right away.
// POST /project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input entities.CreateProjectInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, project)
}

// UpdateProject applies a partial update.
// PATCH /project/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := pathUUID(c, "id", "project")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateProjectInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.service.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, project)
}

// DeleteProject soft deletes a project.
// DELETE /project/:id?deleteThread=true
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := pathUUID(c, "id", "project")
	if err != nil {
		response.Error(c, err)
		return
	}
	deleteThread := c.Query("deleteThread") == "true"

	if err := h.service.Delete(c.Request.Context(), id, deleteThread); err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, gin.H{"id": id})
}
