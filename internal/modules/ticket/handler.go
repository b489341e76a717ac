package ticket

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"soundbridge/internal/middleware"
	"soundbridge/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(approved *gin.RouterGroup) {
	approved.GET("/tickets", h.List)
	approved.POST("/tickets", h.Create)
	approved.GET("/tickets/:id", h.Get)
	approved.POST("/tickets/:id/messages", h.AddMessage)
	approved.GET("/tickets/:id/ws", h.Live)
}

func (h *Handler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tickets, err := h.service.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list tickets")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"tickets": tickets})
}

func (h *Handler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ticket id")
		return
	}

	t, err := h.service.Get(c.Request.Context(), user, id)
	if err != nil {
		h.writeTicketError(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) AddMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ticket id")
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.service.AddMessage(c.Request.Context(), user, id, req.Body)
	if err != nil {
		if errors.Is(err, ErrTicketClosed) {
			response.Error(c, http.StatusBadRequest, "Ticket is closed")
			return
		}
		h.writeTicketError(c, err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"message": msg})
}

// Live upgrades to a websocket pushing new messages on this ticket.
func (h *Handler) Live(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ticket id")
		return
	}

	if err := h.service.CanAccess(c.Request.Context(), user, id); err != nil {
		h.writeTicketError(c, err)
		return
	}

	if err := h.hub.ServeWS(c.Writer, c.Request, user.ID, id); err != nil {
		// Upgrade already wrote its own response.
		c.Abort()
	}
}

func (h *Handler) writeTicketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "Ticket not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "You don't have access to this ticket")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to load ticket")
	}
}
