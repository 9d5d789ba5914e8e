package middleware

import (
	"strings"

	"vph-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const identityKey = "identity"

// Claims are the JWT claims issued at login. Roles are not trusted from
// the token; they are reloaded from the store on every request so a role
// replacement takes effect immediately.
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticate resolves the caller's identity from a Bearer token and
// stores it in the request context. Any failure (missing token, bad
// signature, expiry, unknown or disabled user, role load error) leaves
// the request unauthenticated rather than half-resolved. It never aborts;
// RequireRoles decides whether anonymous access is acceptable.
func Authenticate(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			c.Next()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.Next()
			return
		}

		var assignments []models.RoleAssignment
		if err := db.Where("user_id = ?", user.ID).Find(&assignments).Error; err != nil {
			// Fail closed: an identity without a resolved role set stays
			// anonymous instead of slipping past restricted areas.
			c.Next()
			return
		}

		roles := make([]string, 0, len(assignments))
		for _, a := range assignments {
			roles = append(roles, a.Role)
		}

		c.Set(identityKey, &Identity{
			UserID:   user.ID,
			UserUID:  user.UserUID,
			Username: user.Username,
			Roles:    roles,
		})
		c.Next()
	}
}

// CurrentIdentity returns the resolved identity or nil when anonymous.
func CurrentIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return id
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" && strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}
