package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"soundbridge/internal/domain"
	jwtsvc "soundbridge/internal/pkg/jwt"
	"soundbridge/internal/pkg/response"
)

// Context keys set by Authenticate for downstream handlers.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// UserResolver looks up the session-bound user row. Exactly one lookup is
// performed per guarded request.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Authenticator struct {
	jwt        *jwtsvc.Service
	users      UserResolver
	cookieName string
}

func NewAuthenticator(jwt *jwtsvc.Service, users UserResolver, cookieName string) *Authenticator {
	return &Authenticator{jwt: jwt, users: users, cookieName: cookieName}
}

// Authenticate resolves the session token (cookie or bearer header) to a
// user row and injects it into the request context. Fails with 401.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := a.tokenFromRequest(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		claims, err := a.jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		user, err := a.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID)
		c.Set(CtxRole, string(user.Role))

		c.Next()
	}
}

func (a *Authenticator) tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// CurrentUser returns the resolved user set by Authenticate.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
