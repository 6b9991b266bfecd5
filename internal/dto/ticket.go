package dto

// ── tickets ──

// CreateTicketRequest fault report
type CreateTicketRequest struct {
	PCNumber      string `json:"pcNumber"      binding:"required,pcnumber"`
	IssueCategory string `json:"issueCategory" binding:"required,oneof=Hardware Software Network Other"`
	Priority      string `json:"priority"      binding:"omitempty,oneof=low medium high critical"`
	Description   string `json:"description"   binding:"required,max=2000"`
}

// CreateTicketResponse result of a fault report
type CreateTicketResponse struct {
	ID       uint   `json:"id"`
	TicketID string `json:"ticket_id"`
}

// TicketListRequest list filters
type TicketListRequest struct {
	Status   string `form:"status"   binding:"omitempty,oneof=open in_progress resolved closed"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Mine     bool   `form:"mine"`
}

// UpdateTicketStatusRequest lifecycle transition. Status is validated by the
// service so a bad value surfaces as the ticket module's own error.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// AssignTicketRequest admin assignment
type AssignTicketRequest struct {
	TechID uint `json:"techId" binding:"required"`
}

// AddTicketUpdateRequest free text note
type AddTicketUpdateRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// TicketResponse row of the ticket list
type TicketResponse struct {
	ID          string  `json:"id"`
	PC          string  `json:"pc"`
	User        string  `json:"user"`
	Issue       string  `json:"issue"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	AssignedTo  *string `json:"assignedTo"`
	CreatedAt   string  `json:"created_at"`
	ResolvedAt  *string `json:"resolved_at"`
}

// TicketUpdateResponse history entry
type TicketUpdateResponse struct {
	ID        uint   `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// TicketDetailResponse single ticket with its history
type TicketDetailResponse struct {
	TicketResponse
	Source  string                 `json:"source"`
	Updates []TicketUpdateResponse `json:"updates"`
}
