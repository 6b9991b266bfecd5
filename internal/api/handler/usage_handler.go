package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/service"
	"github.com/anastheace/faultandtms/pkg/response"
)

// UsageHandler PC session endpoints and the lab map
type UsageHandler struct {
	usageSvc service.UsageService
}

func NewUsageHandler(usageSvc service.UsageService) *UsageHandler {
	return &UsageHandler{usageSvc: usageSvc}
}

// CheckIn
// POST /api/v1/usage/login
func (h *UsageHandler) CheckIn(c *gin.Context) {
	var req dto.PCSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.usageSvc.CheckIn(c.Request.Context(), caller, req.PCNumber)
	if err != nil {
		h.handleUsageError(c, err)
		return
	}

	response.Created(c, "PC Login successful", result)
}

// CheckOut
// POST /api/v1/usage/logout
func (h *UsageHandler) CheckOut(c *gin.Context) {
	var req dto.PCSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.usageSvc.CheckOut(c.Request.Context(), caller, req.PCNumber); err != nil {
		h.handleUsageError(c, err)
		return
	}

	response.OKWithMessage(c, "PC Logout successful", nil)
}

// ListLogs
// GET /api/v1/usage/logs?page=&page_size=
func (h *UsageHandler) ListLogs(c *gin.Context) {
	var req dto.UsageLogListRequest
	if !bindQuery(c, &req) {
		return
	}

	logs, total, err := h.usageSvc.ListLogs(c.Request.Context(), &req)
	if err != nil {
		h.handleUsageError(c, err)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}

// ListComputers lab map
// GET /api/v1/computers
func (h *UsageHandler) ListComputers(c *gin.Context) {
	computers, err := h.usageSvc.ListComputers(c.Request.Context())
	if err != nil {
		h.handleUsageError(c, err)
		return
	}

	response.OK(c, computers)
}

func (h *UsageHandler) handleUsageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrComputerNotFound):
		response.NotFound(c, 13001, "Computer not found")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.BadRequest(c, 13002, "Already checked in on this PC")
	case errors.Is(err, service.ErrNoActiveSession):
		response.NotFound(c, 13003, "No active check-in found for this PC")
	default:
		response.InternalError(c)
	}
}
