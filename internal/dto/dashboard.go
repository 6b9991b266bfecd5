package dto

// DashboardStats admin overview
type DashboardStats struct {
	TotalTickets        int64            `json:"total_tickets"`
	Pending             int64            `json:"pending"`
	Resolved            int64            `json:"resolved"`
	Closed              int64            `json:"closed"`
	ByPriority          map[string]int64 `json:"by_priority"`
	ActivePCs           int64            `json:"active_pcs"`
	UpcomingMaintenance int64            `json:"upcoming_maintenance"`
	ComputersByStatus   map[string]int64 `json:"computers_by_status"`
}
