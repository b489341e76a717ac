package payout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"soundbridge/internal/middleware"
	"soundbridge/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(approved *gin.RouterGroup) {
	approved.GET("/balance", h.GetBalance)
	approved.GET("/earnings", h.ListEarnings)
	approved.GET("/payout-methods", h.ListMethods)
	approved.POST("/payout-methods", h.CreateMethod)
	approved.GET("/payout-requests", h.ListRequests)
	approved.POST("/payout-requests", h.CreateRequest)
}

// GetBalance returns the recomputed earnings-minus-payouts balance.
func (h *Handler) GetBalance(c *gin.Context) {
	user := middleware.CurrentUser(c)

	balance, err := h.service.Balance(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute balance")
		return
	}

	response.OK(c, http.StatusOK, balance)
}

func (h *Handler) ListEarnings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	earnings, err := h.service.ListEarnings(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list earnings")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"earnings": earnings})
}

func (h *Handler) ListMethods(c *gin.Context) {
	user := middleware.CurrentUser(c)

	methods, err := h.service.ListMethods(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list payout methods")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"methods": methods})
}

func (h *Handler) CreateMethod(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	method, err := h.service.CreateMethod(c.Request.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, ErrTypeNotAllowed) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create payout method")
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"method": method})
}

func (h *Handler) ListRequests(c *gin.Context) {
	user := middleware.CurrentUser(c)

	requests, err := h.service.ListRequests(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list payout requests")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"requests": requests})
}

// CreateRequest submits a withdrawal against the current balance.
func (h *Handler) CreateRequest(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	pr, err := h.service.CreateRequest(c.Request.Context(), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMethodNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrBelowMinimum),
			errors.Is(err, ErrInsufficientBalance),
			errors.Is(err, ErrMethodNotUsable):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create payout request")
		}
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"request": pr})
}
