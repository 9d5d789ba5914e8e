package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vph-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateUnauthenticated(t *testing.T) {
	decision := Evaluate(nil, []string{models.RoleReception}, "/reception")

	assert.False(t, decision.Allow)
	assert.Equal(t, "/login", decision.Redirect)
	assert.Equal(t, "/reception", decision.From)
}

func TestEvaluateUnauthenticatedEvenForUnrestrictedArea(t *testing.T) {
	decision := Evaluate(nil, nil, "/dashboard")

	assert.False(t, decision.Allow)
	assert.Equal(t, "/login", decision.Redirect)
}

func TestEvaluateManagerBypassesEveryRestriction(t *testing.T) {
	manager := &Identity{UserID: 1, Roles: []string{models.RoleManager}}

	for _, allowed := range [][]string{
		nil,
		{models.RoleReception},
		{models.RoleBar, models.RoleInventory},
		{models.RoleAccounts},
	} {
		decision := Evaluate(manager, allowed, "/x")
		assert.True(t, decision.Allow, "allowed=%v", allowed)
	}
}

func TestEvaluateUnrestrictedAreaAdmitsAnyAuthenticated(t *testing.T) {
	id := &Identity{UserID: 2, Roles: nil}

	decision := Evaluate(id, nil, "/dashboard")
	assert.True(t, decision.Allow)
}

func TestEvaluateRoleIntersection(t *testing.T) {
	id := &Identity{UserID: 3, Roles: []string{models.RoleBar, models.RoleRestaurant}}

	assert.True(t, Evaluate(id, []string{models.RoleBar}, "/bar").Allow)
	assert.True(t, Evaluate(id, []string{models.RoleReception, models.RoleRestaurant}, "/x").Allow)

	decision := Evaluate(id, []string{models.RoleAccounts}, "/accounts")
	assert.False(t, decision.Allow)
	assert.Equal(t, "/unauthorized", decision.Redirect)
}

func TestEvaluateEmptyRoleSetDeniedFromRestrictedArea(t *testing.T) {
	id := &Identity{UserID: 4, Roles: []string{}}

	decision := Evaluate(id, []string{models.RoleReception}, "/reception")
	assert.False(t, decision.Allow)
	assert.Equal(t, "/unauthorized", decision.Redirect)
}

func newAccessRouter(identity *Identity, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	})
	r.GET("/protected", RequireRoles(allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRequireRolesAnonymousGets401WithLoginRedirect(t *testing.T) {
	r := newAccessRouter(nil, models.RoleReception)

	w, body := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, "/protected", body["from"])
}

func TestRequireRolesWrongRoleGets403WithUnauthorizedRedirect(t *testing.T) {
	r := newAccessRouter(&Identity{UserID: 9, Roles: []string{models.RoleBar}}, models.RoleReception)

	w, body := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/unauthorized", body["redirect"])
}

func TestRequireRolesMatchingRolePasses(t *testing.T) {
	r := newAccessRouter(&Identity{UserID: 9, Roles: []string{models.RoleReception}}, models.RoleReception)

	w, body := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
}

func TestRequireRolesManagerPasses(t *testing.T) {
	r := newAccessRouter(&Identity{UserID: 1, Roles: []string{models.RoleManager}}, models.RoleAccounts)

	w, _ := doGet(t, r, "/protected")
	assert.Equal(t, http.StatusOK, w.Code)
}
