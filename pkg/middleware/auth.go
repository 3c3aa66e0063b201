package middleware

import (
	"net/http"
	"strings"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
)

// Identity is the request-scoped caller identity the guard derives from a
// bearer token. A token without elevated claims produces an identity with
// an empty role, which every policy check treats exactly like the lowest
// tier.
type Identity struct {
	Username string
	AdminID  uint
	Name     string
	Role     model.Role
}

// Elevated reports whether the caller may touch catalog content at all.
func (id Identity) Elevated() bool {
	return id.Role.Elevated()
}

func (id Identity) IsGod() bool {
	return id.Role == model.RoleGod
}

// GetIdentity returns the identity set by NewAuthMiddleware. Only call it
// behind that middleware.
func GetIdentity(c *gin.Context) Identity {
	return c.MustGet("identity").(Identity)
}

// NewAuthMiddleware decodes the Authorization bearer token and threads the
// caller's identity into the request context. A missing or undecodable
// token is a 401; policy checks further down answer 403.
func NewAuthMiddleware(issuer *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Authorization header missing",
				"requestID": requestID,
			})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Authorization header must be a bearer token",
				"requestID": requestID,
			})
			return
		}

		claims, err := issuer.ParseAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Session token invalid or expired. Please log in again",
				"requestID": requestID,
			})
			return
		}

		c.Set("identity", Identity{
			Username: claims.Subject,
			AdminID:  claims.AdminID,
			Name:     claims.Name,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// RequireEditor gates catalog mutations: any non-empty role claim passes.
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if !GetIdentity(c).Elevated() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":   "You are not allowed to modify catalog content",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

// RequireGod gates operator account management.
func RequireGod() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if !GetIdentity(c).IsGod() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":   "God level admin access required",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
