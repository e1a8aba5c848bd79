package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

func authRouter(stub *authServiceStub) http.Handler {
	h := NewAuthHandler(stub)
	r := newTestRouter()
	r.POST("/auth/google/verify", h.Verify)
	r.POST("/auth/google", h.Login)
	return r
}

func TestAuthHandler_Verify(t *testing.T) {
	stub := &authServiceStub{}
	r := authRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/auth/google/verify", map[string]string{"email": "a@studio.test", "secret": "s"})
	require.Equal(t, http.StatusOK, w.Code)
	doc := decodeBody(t, w)["doc"].(map[string]interface{})
	assert.Equal(t, "a@studio.test", doc["email"])
	assert.Equal(t, true, doc["verified"])

	w = doJSON(t, r, http.MethodPost, "/auth/google/verify", map[string]string{"email": "not-an-email", "secret": "s"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.err = domainerrors.BadRequest("Invalid secret")
	w = doJSON(t, r, http.MethodPost, "/auth/google/verify", map[string]string{"email": "a@studio.test", "secret": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid secret")
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &authServiceStub{}
	r := authRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/auth/google", map[string]string{"email": "a@studio.test"})
	require.Equal(t, http.StatusOK, w.Code)
	doc := decodeBody(t, w)["doc"].(map[string]interface{})
	assert.Equal(t, "token", doc["accessToken"])

	stub.err = domainerrors.Forbidden("Verification needed")
	w = doJSON(t, r, http.MethodPost, "/auth/google", map[string]string{"email": "a@studio.test"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Verification needed")
}
