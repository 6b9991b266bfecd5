package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
	apperrors "github.com/anastheace/faultandtms/pkg/errors"
)

// TicketFilter narrows List. Zero values mean no restriction.
type TicketFilter struct {
	Status     string
	Priority   string
	ReportedBy uint
	AssignedTo uint
}

// TicketRepository ticket data access
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id uint) (*model.Ticket, error)
	// List preloads computer, reporter and assignee, newest first.
	List(ctx context.Context, filter TicketFilter) ([]model.Ticket, error)
	UpdateStatus(ctx context.Context, id uint, status string, resolvedAt *time.Time) error
	Assign(ctx context.Context, id, techID uint) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
}

type ticketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) TicketRepository {
	return &ticketRepo{db: db}
}

func (r *ticketRepo) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepo) GetByID(ctx context.Context, id uint) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Computer").
		Preload("Reporter").
		Preload("Assignee").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) List(ctx context.Context, filter TicketFilter) ([]model.Ticket, error) {
	db := r.db.WithContext(ctx).Model(&model.Ticket{})

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		db = db.Where("priority = ?", filter.Priority)
	}
	if filter.ReportedBy != 0 {
		db = db.Where("reported_by = ?", filter.ReportedBy)
	}
	if filter.AssignedTo != 0 {
		db = db.Where("assigned_to = ?", filter.AssignedTo)
	}

	var tickets []model.Ticket
	err := db.Preload("Computer").
		Preload("Reporter").
		Preload("Assignee").
		Order("created_at DESC, id DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) UpdateStatus(ctx context.Context, id uint, status string, resolvedAt *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoRowsAffected
	}
	return nil
}

func (r *ticketRepo) Assign(ctx context.Context, id, techID uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to": techID,
			"status":      model.TicketInProgress,
			"resolved_at": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoRowsAffected
	}
	return nil
}

func (r *ticketRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "status")
}

func (r *ticketRepo) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "priority")
}

// countBy groups tickets by a fixed column name.
func (r *ticketRepo) countBy(ctx context.Context, column string) (map[string]int64, error) {
	var rows []struct {
		Label string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	return counts, nil
}
