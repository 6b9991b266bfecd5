package dto

// ── usage ──

// PCSessionRequest check-in / check-out body
type PCSessionRequest struct {
	PCNumber string `json:"pcNumber" binding:"required,pcnumber"`
}

// CheckInResponse new session id
type CheckInResponse struct {
	LogID uint `json:"log_id"`
}

// UsageLogListRequest paging for the usage log
type UsageLogListRequest struct {
	PaginationRequest
}

// UsageLogResponse usage log row
type UsageLogResponse struct {
	ID         uint    `json:"id"`
	ComputerID string  `json:"computer_id"`
	UserName   string  `json:"user_name"`
	Role       string  `json:"role"`
	LoginTime  string  `json:"login_time"`
	LogoutTime *string `json:"logout_time"`
}

// ComputerResponse lab map entry
type ComputerResponse struct {
	ID              uint    `json:"id"`
	ComputerID      string  `json:"computer_id"`
	LabNumber       string  `json:"lab_number"`
	Status          string  `json:"status"`
	LastMaintenance *string `json:"last_maintenance"`
}
