package dto

// ── maintenance ──

// CreateMaintenanceRequest schedule a job
type CreateMaintenanceRequest struct {
	PCNumber      string `json:"pcNumber"      binding:"required,pcnumber"`
	ScheduledDate string `json:"scheduledDate" binding:"required,isodate"`
	Description   string `json:"description"   binding:"max=2000"`
}

// CreateMaintenanceResponse new schedule id
type CreateMaintenanceResponse struct {
	ID uint `json:"id"`
}

// UpdateMaintenanceStatusRequest status is checked by the service.
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status"`
}

// MaintenanceResponse schedule row
type MaintenanceResponse struct {
	ID            uint   `json:"id"`
	PCNumber      string `json:"pc_number"`
	ScheduledDate string `json:"scheduled_date"`
	Status        string `json:"status"`
	Description   string `json:"description"`
}
