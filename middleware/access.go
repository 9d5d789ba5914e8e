package middleware

import (
	"net/http"

	"vph-backend/models"

	"github.com/gin-gonic/gin"
)

// Identity is the resolved caller: who they are and which department
// roles they currently hold. A nil Identity means unauthenticated.
type Identity struct {
	UserID   uint
	UserUID  string
	Username string
	Roles    []string
}

// HasRole reports whether the identity holds the given role directly.
func (id *Identity) HasRole(role string) bool {
	if id == nil {
		return false
	}
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsManager reports whether the identity holds the manager role.
func (id *Identity) IsManager() bool {
	return id.HasRole(models.RoleManager)
}

// Decision is the outcome of an access check. Denials carry the redirect
// the client should navigate to; unauthenticated denials preserve the
// originally requested path for post-login redirect.
type Decision struct {
	Allow    bool
	Redirect string
	From     string
}

// Evaluate decides whether an identity may enter an area restricted to
// the given roles. Rules, in order: unauthenticated is denied to /login;
// manager is allowed unconditionally; an unrestricted area admits any
// authenticated identity; otherwise the identity's roles must intersect
// the allowed set, or the caller is sent to /unauthorized.
func Evaluate(id *Identity, allowedRoles []string, requestedPath string) Decision {
	if id == nil {
		return Decision{Allow: false, Redirect: "/login", From: requestedPath}
	}
	if id.IsManager() {
		return Decision{Allow: true}
	}
	if len(allowedRoles) == 0 {
		return Decision{Allow: true}
	}
	for _, allowed := range allowedRoles {
		if id.HasRole(allowed) {
			return Decision{Allow: true}
		}
	}
	return Decision{Allow: false, Redirect: "/unauthorized"}
}

// RequireRoles gates a route group behind the access evaluator. With no
// roles it only requires authentication.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := Evaluate(CurrentIdentity(c), allowedRoles, c.Request.URL.Path)
		if decision.Allow {
			c.Next()
			return
		}

		if decision.Redirect == "/login" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"error":    "authentication_required",
				"redirect": decision.Redirect,
				"from":     decision.From,
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success":  false,
			"error":    "access_denied",
			"redirect": decision.Redirect,
		})
	}
}
