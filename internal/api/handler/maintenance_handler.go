package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/service"
	"github.com/anastheace/faultandtms/pkg/response"
)

// MaintenanceHandler maintenance schedule endpoints
type MaintenanceHandler struct {
	maintenanceSvc service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceSvc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceSvc: maintenanceSvc}
}

// ListSchedules
// GET /api/v1/maintenance
func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.maintenanceSvc.List(c.Request.Context())
	if err != nil {
		h.handleMaintenanceError(c, err)
		return
	}

	response.OK(c, schedules)
}

// CreateSchedule
// POST /api/v1/maintenance
func (h *MaintenanceHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateMaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.maintenanceSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleMaintenanceError(c, err)
		return
	}

	response.Created(c, "Maintenance scheduled successfully", result)
}

// UpdateStatus
// PUT /api/v1/maintenance/:id/status
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaintenanceStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.maintenanceSvc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.handleMaintenanceError(c, err)
		return
	}

	response.OKWithMessage(c, "Schedule updated successfully", nil)
}

// Calendar iCalendar feed
// GET /api/v1/maintenance/calendar
func (h *MaintenanceHandler) Calendar(c *gin.Context) {
	feed, err := h.maintenanceSvc.Calendar(c.Request.Context())
	if err != nil {
		h.handleMaintenanceError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="maintenance.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *MaintenanceHandler) handleMaintenanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14001, "Schedule not found")
	case errors.Is(err, service.ErrInvalidScheduleDate):
		response.BadRequest(c, 14002, "Scheduled date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidMaintenanceStatus):
		response.BadRequest(c, 14003, "Invalid status")
	case errors.Is(err, service.ErrStatusRequired):
		response.BadRequest(c, 14004, "Status is required")
	default:
		response.InternalError(c)
	}
}
