package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
	apperrors "github.com/anastheace/faultandtms/pkg/errors"
)

// MaintenanceRepository maintenance schedule data access
type MaintenanceRepository interface {
	Create(ctx context.Context, schedule *model.MaintenanceSchedule) error
	GetByID(ctx context.Context, id uint) (*model.MaintenanceSchedule, error)
	// List returns every schedule with its computer, earliest date first.
	List(ctx context.Context) ([]model.MaintenanceSchedule, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountPendingFrom(ctx context.Context, from datatypes.Date) (int64, error)
}

type maintenanceRepo struct {
	db *gorm.DB
}

func NewMaintenanceRepo(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) Create(ctx context.Context, schedule *model.MaintenanceSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id uint) (*model.MaintenanceSchedule, error) {
	var m model.MaintenanceSchedule
	if err := r.db.WithContext(ctx).Preload("Computer").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepo) List(ctx context.Context) ([]model.MaintenanceSchedule, error) {
	var list []model.MaintenanceSchedule
	err := r.db.WithContext(ctx).
		Preload("Computer").
		Order("scheduled_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *maintenanceRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&model.MaintenanceSchedule{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoRowsAffected
	}
	return nil
}

func (r *maintenanceRepo) CountPendingFrom(ctx context.Context, from datatypes.Date) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceSchedule{}).
		Where("status = ? AND scheduled_date >= ?", model.MaintenancePending, from).
		Count(&n).Error
	return n, err
}
