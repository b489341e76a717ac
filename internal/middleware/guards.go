package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soundbridge/internal/domain"
	"soundbridge/internal/pkg/response"
)

// ApprovedActive blocks users that are not yet approved or that are
// suspended. Suspension is enforced here, server-side, not just in the UI.
func ApprovedActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if user.IsSuspended {
			response.Error(c, http.StatusForbidden, "Your account is suspended")
			c.Abort()
			return
		}

		if !user.IsApproved {
			response.Error(c, http.StatusForbidden, "Your account is not approved yet")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly requires the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if user.Role != domain.RoleAdmin {
			response.Error(c, http.StatusForbidden, "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
