package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

func taskRouter(stub *taskServiceStub) http.Handler {
	h := NewTaskHandler(stub)
	r := newTestRouter()
	r.GET("/task/list", h.ListTasks)
	r.POST("/task", h.CreateTask)
	r.PATCH("/task/:id", h.UpdateTask)
	r.DELETE("/task/:id", h.DeleteTask)
	return r
}

func TestTaskHandler_List(t *testing.T) {
	stub := &taskServiceStub{}
	r := taskRouter(stub)
	projectID := uuid.New()

	w := doJSON(t, r, http.MethodGet, "/task/list?project_id_eq="+projectID.String()+"&sort=created_at:desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projectID, *stub.lastFilter.ProjectID)
	assert.True(t, stub.lastFilter.SortDesc)
	assert.JSONEq(t, `{"data":{"docs":[]}}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/task/list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, stub.lastFilter.ProjectID)
	assert.False(t, stub.lastFilter.SortDesc)
}

func TestTaskHandler_CreateUpdateDelete(t *testing.T) {
	stub := &taskServiceStub{}
	r := taskRouter(stub)
	projectID := uuid.New()

	w := doJSON(t, r, http.MethodPost, "/task", map[string]interface{}{
		"projectId":   projectID,
		"fee":         50000,
		"imageCount":  2,
		"attachments": []string{"a.png"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projectID, stub.created.ProjectID)
	assert.Equal(t, []string{"a.png"}, stub.created.Attachments)

	w = doJSON(t, r, http.MethodPost, "/task", map[string]interface{}{"fee": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.New()
	w = doJSON(t, r, http.MethodPatch, "/task/"+id.String(), map[string]interface{}{"note": "revisi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "revisi", *stub.updated.Note)
	assert.Nil(t, stub.updated.Attachments)

	w = doJSON(t, r, http.MethodDelete, "/task/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())

	stub.err = domainerrors.NotFound("Task not found")
	w = doJSON(t, r, http.MethodDelete, "/task/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
