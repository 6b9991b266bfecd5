package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
)

// ComputerRepository workstation data access
type ComputerRepository interface {
	GetByTag(ctx context.Context, tag string) (*model.Computer, error)
	// FindOrCreate returns the workstation with the given tag, inserting it
	// with labNumber and status when it does not exist yet.
	FindOrCreate(ctx context.Context, tag, labNumber, status string) (*model.Computer, error)
	List(ctx context.Context) ([]model.Computer, error)
	ListByStatus(ctx context.Context, status string) ([]model.Computer, error)
	UpdateLastMaintenance(ctx context.Context, id uint, at time.Time) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type computerRepo struct {
	db *gorm.DB
}

func NewComputerRepo(db *gorm.DB) ComputerRepository {
	return &computerRepo{db: db}
}

func (r *computerRepo) GetByTag(ctx context.Context, tag string) (*model.Computer, error) {
	var c model.Computer
	err := r.db.WithContext(ctx).
		Where("computer_id = ?", tag).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *computerRepo) FindOrCreate(ctx context.Context, tag, labNumber, status string) (*model.Computer, error) {
	var c model.Computer
	err := r.db.WithContext(ctx).
		Where(model.Computer{ComputerID: tag}).
		Attrs(model.Computer{LabNumber: labNumber, Status: status}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *computerRepo) List(ctx context.Context) ([]model.Computer, error) {
	var list []model.Computer
	err := r.db.WithContext(ctx).
		Order("lab_number ASC, computer_id ASC").
		Find(&list).Error
	return list, err
}

func (r *computerRepo) ListByStatus(ctx context.Context, status string) ([]model.Computer, error) {
	var list []model.Computer
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("computer_id ASC").
		Find(&list).Error
	return list, err
}

func (r *computerRepo) UpdateLastMaintenance(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Computer{}).
		Where("id = ?", id).
		Update("last_maintenance", at).Error
}

func (r *computerRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Computer{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
