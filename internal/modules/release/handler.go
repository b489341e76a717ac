package release

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"soundbridge/internal/middleware"
	"soundbridge/internal/pkg/response"
)

type Handler struct {
	service   *Service
	uploadDir string
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

// RegisterRoutes mounts the approved-active release endpoints.
func (h *Handler) RegisterRoutes(approved *gin.RouterGroup) {
	approved.GET("/releases", h.List)
	approved.POST("/releases", h.Create)
	approved.GET("/releases/:id", h.Get)
	approved.GET("/dsps", h.ListDSPs)
	approved.POST("/uploads", h.Upload)
}

// Create submits a new release for review.
// @Summary		Submit a release
// @Description	Validates metadata, tracks and DSP selection; returns a field-keyed error map on failure.
// @Tags		Releases
// @Param		request	body	CreateReleaseRequest	true	"Release payload"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/releases [POST]
func (h *Handler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rel, fields, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.ValidationError(c, http.StatusBadRequest, "Release validation failed", fields)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create release")
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"release": rel})
}

// List returns releases visible to the current role.
func (h *Handler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	releases, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list releases")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"releases": releases})
}

// Get returns a single release with its tracks, ownership-checked.
func (h *Handler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid release id")
		return
	}

	rel, err := h.service.Get(c.Request.Context(), user, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "Release not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "You don't own this release")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to load release")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{"release": rel})
}

// ListDSPs returns the enabled DSP catalog for the submission form.
func (h *Handler) ListDSPs(c *gin.Context) {
	dsps, err := h.service.EnabledDSPs(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list platforms")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dsps": dsps})
}

// Upload stores a cover art or audio file and returns its serving URL.
// Files get uuid names so uploads never collide or leak original names.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to prepare storage")
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	savePath := filepath.Join(h.uploadDir, filename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to save file")
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"url":               "/static/" + filename,
		"original_filename": file.Filename,
	})
}
