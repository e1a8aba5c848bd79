package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/interfaces/http/response"
)

type taskService interface {
	List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Task, error)
	Create(ctx context.Context, input *entities.CreateTaskInput) (*entities.Task, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTaskInput) (*entities.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (*entities.Task, error)
}

type TaskHandler struct {
	service taskService
}

func NewTaskHandler(service taskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// ListTasks returns tasks with their attachments.
// GET /task/list?project_id_eq=&sort=created_at:asc
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID, err := queryUUID(c, "project_id_eq")
	if err != nil {
		response.Error(c, err)
		return
	}

	tasks, err := h.service.List(c.Request.Context(), entities.TaskFilter{ProjectID: projectID, SortDesc: sortDesc(c)})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Docs(c, tasks, nil)
}

// CreateTask adds a task and recalculates its project.
// POST /task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input entities.CreateTaskInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	task, err := h.service.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, task)
}

// UpdateTask changes fee, note, image count or attachments.
// PATCH /task/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := pathUUID(c, "id", "task")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input entities.UpdateTaskInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	task, err := h.service.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, task)
}

// DeleteTask removes a task and its attachments.
// DELETE /task/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := pathUUID(c, "id", "task")
	if err != nil {
		response.Error(c, err)
		return
	}

	task, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Doc(c, http.StatusOK, task)
}
