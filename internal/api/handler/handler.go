package handler

import "github.com/anastheace/faultandtms/internal/service"

// Handler aggregates every module's HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	Ticket      *TicketHandler
	Usage       *UsageHandler
	Maintenance *MaintenanceHandler
	Dashboard   *DashboardHandler
	Export      *ExportHandler
}

// NewHandler wires every handler to its service.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Ticket:      NewTicketHandler(svc.Ticket),
		Usage:       NewUsageHandler(svc.Usage),
		Maintenance: NewMaintenanceHandler(svc.Maintenance),
		Dashboard:   NewDashboardHandler(svc.Dashboard),
		Export:      NewExportHandler(svc.Export),
	}
}
