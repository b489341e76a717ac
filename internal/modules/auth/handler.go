package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"soundbridge/internal/middleware"
	"soundbridge/internal/pkg/response"
)

// CookieConfig describes the session cookie set on login.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Handler manages all HTTP interactions for accounts and sessions.
type Handler struct {
	service *Service
	cookie  CookieConfig
}

func NewHandler(service *Service, cookie CookieConfig) *Handler {
	return &Handler{service: service, cookie: cookie}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterAuthenticatedRoutes(authed *gin.RouterGroup) {
	authed.GET("/auth/me", h.GetMe)

	userGroup := authed.Group("/users")
	{
		userGroup.PUT("/me", h.UpdateProfile)
		userGroup.PUT("/me/password", h.ChangePassword)
	}
}

// Register creates an account plus its pending access application.
// @Summary		Register an account
// @Description	Creates a new user (unapproved) and a pending application for admin review.
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"Registration payload"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"user": user})
}

// Login verifies credentials and establishes the session cookie.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Credentials"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Username or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)

	response.OK(c, http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout destroys the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.OK(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GetMe returns the current session user.
func (h *Handler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the current user's editable profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Could not update profile")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"user": updated})
}

// ChangePassword rotates the current user's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), user.ID, req); err != nil {
		if errors.Is(err, ErrWrongPassword) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Could not change password")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "password updated"})
}
