package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"soundbridge/internal/domain"
	"soundbridge/internal/middleware"
	"soundbridge/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the moderation surface on the admin group and the
// published news feed on the authenticated group.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup, authed *gin.RouterGroup) {
	admin.GET("/applications", h.ListApplications)
	admin.PATCH("/applications/:id", h.ReviewApplication)

	admin.GET("/releases", h.ListReleases)
	admin.PATCH("/releases/:id", h.ReviewRelease)

	admin.GET("/users", h.ListUsers)
	admin.PATCH("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)

	admin.GET("/payout-methods", h.ListPayoutMethods)
	admin.PATCH("/payout-methods/:id", h.ReviewPayoutMethod)
	admin.GET("/payout-requests", h.ListPayoutRequests)
	admin.PATCH("/payout-requests/:id", h.ReviewPayoutRequest)

	admin.GET("/tickets", h.ListTickets)
	admin.PATCH("/tickets/:id", h.SetTicketStatus)

	admin.GET("/dsps", h.ListDSPs)
	admin.POST("/dsps", h.CreateDSP)
	admin.PATCH("/dsps/:id", h.UpdateDSP)

	admin.GET("/settings", h.ListSettings)
	admin.PUT("/settings", h.SetSetting)

	admin.POST("/earnings", h.CreateEarning)

	admin.GET("/news", h.ListNews)
	admin.POST("/news", h.CreateNews)
	admin.PATCH("/news/:id", h.UpdateNews)
	admin.DELETE("/news/:id", h.DeleteNews)

	admin.GET("/stats", h.GetStatistics)

	authed.GET("/news", h.ListPublishedNews)
}

// -------------------- Applications --------------------

func (h *Handler) ListApplications(c *gin.Context) {
	apps, err := h.service.ListApplications(c.Request.Context(), domain.ReviewStatus(c.Query("status")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"applications": apps})
}

// ReviewApplication approves or rejects an access application.
// @Summary  Review an application
// @Tags     admin
// @Param    id   path  int            true  "Application ID"
// @Param    body body  ReviewRequest  true  "Review decision"
// @Success  200  {object}  map[string]any
// @Router   /admin/applications/{id} [patch]
func (h *Handler) ReviewApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.service.ReviewApplication(c.Request.Context(), id, req)
	if err != nil {
		h.writeReviewError(c, err, "Application")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"application": app})
}

// -------------------- Releases --------------------

func (h *Handler) ListReleases(c *gin.Context) {
	releases, err := h.service.ListReleases(c.Request.Context(), domain.ReviewStatus(c.Query("status")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list releases")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"releases": releases})
}

func (h *Handler) ReviewRelease(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rel, err := h.service.ReviewRelease(c.Request.Context(), id, req)
	if err != nil {
		h.writeReviewError(c, err, "Release")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"release": rel})
}

// -------------------- Users --------------------

func (h *Handler) ListUsers(c *gin.Context) {
	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "Invalid role")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	admin := middleware.CurrentUser(c)
	if admin.ID == id {
		response.Error(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true})
}

// -------------------- Payouts --------------------

func (h *Handler) ListPayoutMethods(c *gin.Context) {
	methods, err := h.service.ListPayoutMethods(c.Request.Context(), domain.ReviewStatus(c.Query("status")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list payout methods")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"payout_methods": methods})
}

func (h *Handler) ReviewPayoutMethod(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.service.ReviewPayoutMethod(c.Request.Context(), id, req)
	if err != nil {
		h.writeReviewError(c, err, "Payout method")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"payout_method": m})
}

func (h *Handler) ListPayoutRequests(c *gin.Context) {
	requests, err := h.service.ListPayoutRequests(c.Request.Context(), domain.ReviewStatus(c.Query("status")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list payout requests")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"payout_requests": requests})
}

func (h *Handler) ReviewPayoutRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	pr, err := h.service.ReviewPayoutRequest(c.Request.Context(), id, req)
	if err != nil {
		h.writeReviewError(c, err, "Payout request")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"payout_request": pr})
}

// -------------------- Tickets --------------------

func (h *Handler) ListTickets(c *gin.Context) {
	tickets, err := h.service.ListTickets(c.Request.Context(), domain.TicketStatus(c.Query("status")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list tickets")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"tickets": tickets})
}

func (h *Handler) SetTicketStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Status must be open, in_progress or closed")
		return
	}

	t, err := h.service.SetTicketStatus(c.Request.Context(), id, domain.TicketStatus(req.Status))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Ticket not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update ticket")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"ticket": t})
}

// -------------------- DSPs --------------------

func (h *Handler) ListDSPs(c *gin.Context) {
	dsps, err := h.service.ListDSPs(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list DSPs")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dsps": dsps})
}

func (h *Handler) CreateDSP(c *gin.Context) {
	var req DSPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.service.CreateDSP(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create DSP")
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"dsp": d})
}

func (h *Handler) UpdateDSP(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DSPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.service.UpdateDSP(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "DSP not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update DSP")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dsp": d})
}

// -------------------- Settings --------------------

func (h *Handler) ListSettings(c *gin.Context) {
	settings, err := h.service.ListSettings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list settings")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"settings": settings})
}

func (h *Handler) SetSetting(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Key and value are required")
		return
	}

	if err := h.service.SetSetting(c.Request.Context(), req); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to save setting")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"key": req.Key, "value": req.Value})
}

// -------------------- Earnings --------------------

func (h *Handler) CreateEarning(c *gin.Context) {
	var req CreateEarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := h.service.CreateEarning(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to record earning")
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"earning": e})
}

// -------------------- News --------------------

func (h *Handler) ListNews(c *gin.Context) {
	posts, err := h.service.ListNews(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list news")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"news": posts})
}

func (h *Handler) ListPublishedNews(c *gin.Context) {
	posts, err := h.service.ListPublishedNews(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list news")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"news": posts})
}

func (h *Handler) CreateNews(c *gin.Context) {
	admin := middleware.CurrentUser(c)

	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Title and body are required")
		return
	}

	n, err := h.service.CreateNews(c.Request.Context(), admin.ID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create news post")
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"news": n})
}

func (h *Handler) UpdateNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Title and body are required")
		return
	}

	n, err := h.service.UpdateNews(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "News post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update news post")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"news": n})
}

func (h *Handler) DeleteNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteNews(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "News post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete news post")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true})
}

// -------------------- Statistics --------------------

func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"stats": stats})
}

// -------------------- helpers --------------------

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeReviewError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, entity+" not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "Status must be approved or rejected")
	case errors.Is(err, ErrMissingReason):
		response.Error(c, http.StatusBadRequest, "A rejection reason is required")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusBadRequest, entity+" has already been reviewed")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to review "+strings.ToLower(entity))
	}
}
