package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(issuer *security.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(NewRequestIDMiddleware())

	auth := NewAuthMiddleware(issuer)

	r.GET("/me", auth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetIdentity(c).Username})
	})
	r.POST("/edit", auth, RequireEditor(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/admin", auth, RequireGod(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r
}

func do(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	w := do(r, "GET", "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	w := do(r, "GET", "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Tokens signed with another secret are just as dead.
	other := security.NewTokenIssuer([]byte("other-secret"))
	token, err := other.MintAccess("alice", security.UserAccessTTL, nil)
	require.NoError(t, err)

	w = do(r, "GET", "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidUserToken(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	token, err := issuer.MintAccess("alice", security.UserAccessTTL, nil)
	require.NoError(t, err)

	w := do(r, "GET", "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireEditor_ForbidsBareTokens(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	token, err := issuer.MintAccess("alice", security.UserAccessTTL, nil)
	require.NoError(t, err)

	// Authenticated but unprivileged is a 403, not a 401.
	w := do(r, "POST", "/edit", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireEditor_AllowsElevatedRoles(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	for _, role := range []model.Role{model.RoleEditor, model.RoleGod} {
		admin := &model.Admin{ID: 1, Name: "Ed", Role: role, Username: "ed"}

		token, err := issuer.MintAccess("ed", security.AdminAccessTTL, admin)
		require.NoError(t, err)

		w := do(r, "POST", "/edit", token)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRequireGod_ForbidsEditors(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("test-secret"))
	r := testRouter(issuer)

	editor := &model.Admin{ID: 1, Name: "Ed", Role: model.RoleEditor, Username: "ed"}
	token, err := issuer.MintAccess("ed", security.AdminAccessTTL, editor)
	require.NoError(t, err)

	w := do(r, "POST", "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	god := &model.Admin{ID: 2, Name: "Zeus", Role: model.RoleGod, Username: "zeus"}
	token, err = issuer.MintAccess("zeus", security.AdminAccessTTL, god)
	require.NoError(t, err)

	w = do(r, "POST", "/admin", token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
