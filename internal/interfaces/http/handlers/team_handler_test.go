package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

func teamRouter(stub *teamServiceStub) http.Handler {
	h := NewTeamHandler(stub)
	r := newTestRouter()
	r.GET("/team/list", h.ListTeams)
	r.POST("/team", h.CreateTeam)
	r.PATCH("/team/:id", h.UpdateTeam)
	r.DELETE("/team/:id", h.DeleteTeam)
	return r
}

func TestTeamHandler_List(t *testing.T) {
	stub := &teamServiceStub{}
	r := teamRouter(stub)

	w := doJSON(t, r, http.MethodGet, "/team/list?role_eq=artist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.lastFilter.Role)
	assert.Equal(t, entities.TeamRoleArtist, *stub.lastFilter.Role)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["docs"], 1)

	w = doJSON(t, r, http.MethodGet, "/team/list?role_eq=guest", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamHandler_Create(t *testing.T) {
	stub := &teamServiceStub{}
	r := teamRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/team", map[string]interface{}{
		"name":          "Budi",
		"discordUserId": "123",
		"bankNumber":    nil,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.created)
	assert.Equal(t, "123", *stub.created.DiscordUserID)
	assert.Nil(t, stub.created.BankNumber)
	assert.Contains(t, w.Body.String(), `"name":"Budi"`)

	w = doJSON(t, r, http.MethodPost, "/team", map[string]interface{}{"bankNumber": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/team", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamHandler_UpdateAndDelete(t *testing.T) {
	stub := &teamServiceStub{}
	r := teamRouter(stub)
	id := uuid.New()

	w := doJSON(t, r, http.MethodPatch, "/team/"+id.String(), map[string]interface{}{"name": "Sari"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sari", *stub.updated.Name)
	assert.Nil(t, stub.updated.Role)

	w = doJSON(t, r, http.MethodPatch, "/team/not-a-uuid", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/team/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, stub.deleted)

	stub.err = domainerrors.NotFound("Team not found")
	w = doJSON(t, r, http.MethodDelete, "/team/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Team not found")
}
