package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/internal/repository"
)

// DashboardService admin overview counters
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	byStatus, err := s.repo.Ticket.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("count tickets by status failed", zap.Error(err))
		return nil, err
	}
	byPriority, err := s.repo.Ticket.CountByPriority(ctx)
	if err != nil {
		s.logger.Error("count tickets by priority failed", zap.Error(err))
		return nil, err
	}
	active, err := s.repo.UsageLog.CountOpen(ctx)
	if err != nil {
		s.logger.Error("count open sessions failed", zap.Error(err))
		return nil, err
	}

	y, m, d := s.now().UTC().Date()
	today := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	upcoming, err := s.repo.Maintenance.CountPendingFrom(ctx, today)
	if err != nil {
		s.logger.Error("count upcoming maintenance failed", zap.Error(err))
		return nil, err
	}
	computers, err := s.repo.Computer.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("count computers failed", zap.Error(err))
		return nil, err
	}

	stats := &dto.DashboardStats{
		Pending:             byStatus[model.TicketOpen] + byStatus[model.TicketInProgress],
		Resolved:            byStatus[model.TicketResolved],
		Closed:              byStatus[model.TicketClosed],
		ByPriority:          make(map[string]int64, 4),
		ActivePCs:           active,
		UpcomingMaintenance: upcoming,
		ComputersByStatus:   make(map[string]int64, 3),
	}
	for _, n := range byStatus {
		stats.TotalTickets += n
	}
	for _, p := range []string{model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityCritical} {
		stats.ByPriority[p] = byPriority[p]
	}
	for _, st := range []string{model.ComputerOperational, model.ComputerFaulty, model.ComputerMaintenance} {
		stats.ComputersByStatus[st] = computers[st]
	}
	return stats, nil
}
