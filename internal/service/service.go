package service

import (
	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/config"
	"github.com/anastheace/faultandtms/internal/repository"
	"github.com/anastheace/faultandtms/pkg/jwt"
	"github.com/anastheace/faultandtms/pkg/mailer"
)

// Service groups every service for the handler layer.
type Service struct {
	Auth        AuthService
	Ticket      TicketService
	Usage       UsageService
	Maintenance MaintenanceService
	Dashboard   DashboardService
	Export      ExportService
	Seed        SeedService
}

// NewService wires the services. revoker may be nil when Redis is disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, revoker, logger),
		Ticket:      NewTicketService(repo, mail, cfg.Telemetry.ReporterEmail, logger),
		Usage:       NewUsageService(repo, logger),
		Maintenance: NewMaintenanceService(repo, logger),
		Dashboard:   NewDashboardService(repo, logger),
		Export:      NewExportService(repo, logger),
		Seed:        NewSeedService(repo, logger),
	}
}
