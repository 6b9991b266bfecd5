package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/service"
	"github.com/anastheace/faultandtms/pkg/response"
)

// TicketHandler fault ticket endpoints
type TicketHandler struct {
	ticketSvc service.TicketService
}

func NewTicketHandler(ticketSvc service.TicketService) *TicketHandler {
	return &TicketHandler{ticketSvc: ticketSvc}
}

// CreateTicket report a fault
// POST /api/v1/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.ticketSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleTicketError(c, err)
		return
	}

	response.Created(c, "Fault reported successfully", result)
}

// ListTickets
// GET /api/v1/tickets?status=&priority=&mine=
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var req dto.TicketListRequest
	if !bindQuery(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	tickets, err := h.ticketSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleTicketError(c, err)
		return
	}

	response.OK(c, tickets)
}

// GetTicket single ticket with history
// GET /api/v1/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	ticket, err := h.ticketSvc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleTicketError(c, err)
		return
	}

	response.OK(c, ticket)
}

// UpdateStatus
// PUT /api/v1/tickets/:id/status
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTicketStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.ticketSvc.UpdateStatus(c.Request.Context(), caller, c.Param("id"), req.Status); err != nil {
		h.handleTicketError(c, err)
		return
	}

	response.OKWithMessage(c, "Ticket status updated", nil)
}

// AssignTicket
// PUT /api/v1/tickets/:id/assign
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	var req dto.AssignTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.ticketSvc.Assign(c.Request.Context(), caller, c.Param("id"), req.TechID); err != nil {
		h.handleTicketError(c, err)
		return
	}

	response.OKWithMessage(c, "Ticket assigned successfully", nil)
}

// AddUpdate work note
// POST /api/v1/tickets/:id/updates
func (h *TicketHandler) AddUpdate(c *gin.Context) {
	var req dto.AddTicketUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.ticketSvc.AddUpdate(c.Request.Context(), caller, c.Param("id"), req.Text); err != nil {
		h.handleTicketError(c, err)
		return
	}

	response.Created(c, "Update added", nil)
}

func (h *TicketHandler) handleTicketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		response.NotFound(c, 12001, "Ticket not found")
	case errors.Is(err, service.ErrTicketForbidden):
		response.Forbidden(c, 12002, "You do not have access to this ticket")
	case errors.Is(err, service.ErrStatusRequired):
		response.BadRequest(c, 12003, "Status is required")
	case errors.Is(err, service.ErrInvalidTicketStatus):
		response.BadRequest(c, 12004, "Invalid status")
	case errors.Is(err, service.ErrEmptyDescription):
		response.BadRequest(c, 12005, "Please provide all required fields")
	case errors.Is(err, service.ErrEmptyUpdate):
		response.BadRequest(c, 12006, "Update text is required")
	case errors.Is(err, service.ErrTechnicianNotFound):
		response.BadRequest(c, 12007, "Technician not found")
	default:
		response.InternalError(c)
	}
}
