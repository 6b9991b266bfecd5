package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
)

// UsageLogRepository PC session data access
type UsageLogRepository interface {
	Create(ctx context.Context, log *model.UsageLog) error
	// HasOpenSession reports whether userID has a session on computerID
	// without a logout time.
	HasOpenSession(ctx context.Context, computerID, userID uint) (bool, error)
	// CloseOpen stamps logoutAt on every open session of userID on
	// computerID and returns how many were closed.
	CloseOpen(ctx context.Context, computerID, userID uint, logoutAt time.Time) (int64, error)
	List(ctx context.Context, offset, limit int) ([]model.UsageLog, int64, error)
	CountOpen(ctx context.Context) (int64, error)
}

type usageLogRepo struct {
	db *gorm.DB
}

func NewUsageLogRepo(db *gorm.DB) UsageLogRepository {
	return &usageLogRepo{db: db}
}

func (r *usageLogRepo) Create(ctx context.Context, log *model.UsageLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *usageLogRepo) HasOpenSession(ctx context.Context, computerID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.UsageLog{}).
		Where("computer_id = ? AND user_id = ? AND logout_time IS NULL", computerID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *usageLogRepo) CloseOpen(ctx context.Context, computerID, userID uint, logoutAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.UsageLog{}).
		Where("computer_id = ? AND user_id = ? AND logout_time IS NULL", computerID, userID).
		Update("logout_time", logoutAt)
	return res.RowsAffected, res.Error
}

func (r *usageLogRepo) List(ctx context.Context, offset, limit int) ([]model.UsageLog, int64, error) {
	var logs []model.UsageLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.UsageLog{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		db = db.Offset(offset).Limit(limit)
	}
	if err := db.Preload("Computer").
		Preload("User").
		Order("login_time DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *usageLogRepo) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.UsageLog{}).
		Where("logout_time IS NULL").
		Count(&n).Error
	return n, err
}
