package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tixswap/internal/models"
)

// CreateTicket - POST /api/tickets
func (h *Handlers) CreateTicket(c *gin.Context) {
	var attrs models.TicketAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tickets.Create(c.Request.Context(), callerID(c), &attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListTickets - GET /api/tickets
func (h *Handlers) ListTickets(c *gin.Context) {
	response, err := h.services.Tickets.List(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListMyTickets - GET /api/tickets/my
func (h *Handlers) ListMyTickets(c *gin.Context) {
	response, err := h.services.Tickets.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListRequestedTickets - GET /api/tickets/requested
func (h *Handlers) ListRequestedTickets(c *gin.Context) {
	response, err := h.services.Tickets.ListRequested(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTicket - GET /api/tickets/:id
func (h *Handlers) GetTicket(c *gin.Context) {
	response, err := h.services.Tickets.Get(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateTicket - PUT /api/tickets/:id
func (h *Handlers) UpdateTicket(c *gin.Context) {
	var attrs models.TicketAttrs
	if err := c.ShouldBindJSON(&attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tickets.Update(c.Request.Context(), callerID(c), c.Param("id"), &attrs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteTicket - DELETE /api/tickets/:id
func (h *Handlers) DeleteTicket(c *gin.Context) {
	if err := h.services.Tickets.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

// RequestTicket - POST /api/tickets/:id/request
func (h *Handlers) RequestTicket(c *gin.Context) {
	response, err := h.services.Tickets.Request(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelRequest - DELETE /api/tickets/:id/request
func (h *Handlers) CancelRequest(c *gin.Context) {
	response, err := h.services.Tickets.CancelRequest(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AcceptRequest - POST /api/tickets/:id/accept
func (h *Handlers) AcceptRequest(c *gin.Context) {
	var req models.TargetUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tickets.Accept(c.Request.Context(), callerID(c), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RejectRequest - POST /api/tickets/:id/reject
func (h *Handlers) RejectRequest(c *gin.Context) {
	var req models.TargetUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tickets.Reject(c.Request.Context(), callerID(c), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// MarkSold - POST /api/tickets/:id/sold
func (h *Handlers) MarkSold(c *gin.Context) {
	response, err := h.services.Tickets.MarkSold(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
