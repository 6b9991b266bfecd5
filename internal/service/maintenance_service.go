package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/internal/repository"
	apperrors "github.com/anastheace/faultandtms/pkg/errors"
)

var (
	ErrScheduleNotFound         = errors.New("schedule not found")
	ErrInvalidScheduleDate      = errors.New("scheduled date must be YYYY-MM-DD")
	ErrInvalidMaintenanceStatus = errors.New("invalid maintenance status")
)

// MaintenanceService maintenance planning
type MaintenanceService interface {
	List(ctx context.Context) ([]dto.MaintenanceResponse, error)
	Create(ctx context.Context, req *dto.CreateMaintenanceRequest) (*dto.CreateMaintenanceResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	// Calendar renders every schedule as an iCalendar feed.
	Calendar(ctx context.Context) (string, error)
}

type maintenanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewMaintenanceService(repo *repository.Repository, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{repo: repo, logger: logger}
}

func (s *maintenanceService) List(ctx context.Context) ([]dto.MaintenanceResponse, error) {
	schedules, err := s.repo.Maintenance.List(ctx)
	if err != nil {
		s.logger.Error("list maintenance failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MaintenanceResponse, 0, len(schedules))
	for _, m := range schedules {
		row := dto.MaintenanceResponse{
			ID:            m.ID,
			ScheduledDate: formatDate(m.ScheduledDate),
			Status:        m.Status,
			Description:   m.Description,
		}
		if m.Computer != nil {
			row.PCNumber = m.Computer.ComputerID
		}
		result = append(result, row)
	}
	return result, nil
}

func (s *maintenanceService) Create(ctx context.Context, req *dto.CreateMaintenanceRequest) (*dto.CreateMaintenanceResponse, error) {
	date, err := ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidScheduleDate
	}
	tag := NormalizeTag(req.PCNumber)

	var schedule *model.MaintenanceSchedule
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		pc, err := tx.Computer.FindOrCreate(ctx, tag, LabFromTag(tag), model.ComputerOperational)
		if err != nil {
			return err
		}

		schedule = &model.MaintenanceSchedule{
			ComputerID:    pc.ID,
			ScheduledDate: date,
			Status:        model.MaintenancePending,
			Description:   sanitizeText(req.Description),
		}
		return tx.Maintenance.Create(ctx, schedule)
	})
	if err != nil {
		s.logger.Error("create maintenance failed", zap.String("pc", tag), zap.Error(err))
		return nil, err
	}

	s.logger.Info("maintenance scheduled", zap.Uint("id", schedule.ID), zap.String("pc", tag), zap.String("date", req.ScheduledDate))
	return &dto.CreateMaintenanceResponse{ID: schedule.ID}, nil
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, id uint, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return ErrStatusRequired
	}
	if status != model.MaintenancePending && status != model.MaintenanceCompleted {
		return ErrInvalidMaintenanceStatus
	}

	schedule, err := s.repo.Maintenance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("query maintenance failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Maintenance.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if status == model.MaintenanceCompleted {
			return tx.Computer.UpdateLastMaintenance(ctx, schedule.ComputerID, time.Now())
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNoRowsAffected) {
			return ErrScheduleNotFound
		}
		s.logger.Error("update maintenance failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(dto.DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(dto.DateLayout)
}
