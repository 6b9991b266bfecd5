package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/dto"
	"github.com/anastheace/faultandtms/internal/model"
	"github.com/anastheace/faultandtms/internal/repository"
)

var (
	ErrComputerNotFound = errors.New("computer not found")
	ErrAlreadyCheckedIn = errors.New("already checked in on this computer")
	ErrNoActiveSession  = errors.New("no active check-in for this computer")
)

// UsageService workstation check-in / check-out and the lab map
type UsageService interface {
	CheckIn(ctx context.Context, caller Caller, pcNumber string) (*dto.CheckInResponse, error)
	CheckOut(ctx context.Context, caller Caller, pcNumber string) error
	ListLogs(ctx context.Context, req *dto.UsageLogListRequest) ([]dto.UsageLogResponse, int64, error)
	ListComputers(ctx context.Context) ([]dto.ComputerResponse, error)
}

type usageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewUsageService(repo *repository.Repository, logger *zap.Logger) UsageService {
	return &usageService{repo: repo, logger: logger}
}

func (s *usageService) CheckIn(ctx context.Context, caller Caller, pcNumber string) (*dto.CheckInResponse, error) {
	tag := NormalizeTag(pcNumber)

	var entry *model.UsageLog
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		pc, err := tx.Computer.FindOrCreate(ctx, tag, LabFromTag(tag), model.ComputerOperational)
		if err != nil {
			return err
		}

		open, err := tx.UsageLog.HasOpenSession(ctx, pc.ID, caller.UserID)
		if err != nil {
			return err
		}
		if open {
			return ErrAlreadyCheckedIn
		}

		entry = &model.UsageLog{
			ComputerID: pc.ID,
			UserID:     caller.UserID,
			LoginTime:  time.Now(),
		}
		return tx.UsageLog.Create(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			return nil, err
		}
		s.logger.Error("check in failed", zap.String("pc", tag), zap.Error(err))
		return nil, err
	}

	s.logger.Info("pc check in", zap.String("pc", tag), zap.Uint("user_id", caller.UserID))
	return &dto.CheckInResponse{LogID: entry.ID}, nil
}

func (s *usageService) CheckOut(ctx context.Context, caller Caller, pcNumber string) error {
	tag := NormalizeTag(pcNumber)

	pc, err := s.repo.Computer.GetByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComputerNotFound
		}
		s.logger.Error("query computer failed", zap.String("pc", tag), zap.Error(err))
		return err
	}

	closed, err := s.repo.UsageLog.CloseOpen(ctx, pc.ID, caller.UserID, time.Now())
	if err != nil {
		s.logger.Error("check out failed", zap.String("pc", tag), zap.Error(err))
		return err
	}
	if closed == 0 {
		return ErrNoActiveSession
	}

	s.logger.Info("pc check out", zap.String("pc", tag), zap.Uint("user_id", caller.UserID), zap.Int64("sessions", closed))
	return nil
}

func (s *usageService) ListLogs(ctx context.Context, req *dto.UsageLogListRequest) ([]dto.UsageLogResponse, int64, error) {
	logs, total, err := s.repo.UsageLog.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list usage logs failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UsageLogResponse, 0, len(logs))
	for _, l := range logs {
		row := dto.UsageLogResponse{
			ID:         l.ID,
			LoginTime:  formatTime(l.LoginTime),
			LogoutTime: formatTimePtr(l.LogoutTime),
		}
		if l.Computer != nil {
			row.ComputerID = l.Computer.ComputerID
		}
		if l.User != nil {
			row.UserName = l.User.Name
			row.Role = l.User.Role
		}
		result = append(result, row)
	}
	return result, total, nil
}

func (s *usageService) ListComputers(ctx context.Context) ([]dto.ComputerResponse, error) {
	computers, err := s.repo.Computer.List(ctx)
	if err != nil {
		s.logger.Error("list computers failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ComputerResponse, 0, len(computers))
	for _, c := range computers {
		result = append(result, dto.ComputerResponse{
			ID:              c.ID,
			ComputerID:      c.ComputerID,
			LabNumber:       c.LabNumber,
			Status:          c.Status,
			LastMaintenance: formatTimePtr(c.LastMaintenance),
		})
	}
	return result, nil
}
