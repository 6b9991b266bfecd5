package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/anastheace/faultandtms/internal/model"
)

// TicketUpdateRepository ticket history data access
type TicketUpdateRepository interface {
	Create(ctx context.Context, update *model.TicketUpdate) error
	ListByTicket(ctx context.Context, ticketID uint) ([]model.TicketUpdate, error)
}

type ticketUpdateRepo struct {
	db *gorm.DB
}

func NewTicketUpdateRepo(db *gorm.DB) TicketUpdateRepository {
	return &ticketUpdateRepo{db: db}
}

func (r *ticketUpdateRepo) Create(ctx context.Context, update *model.TicketUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *ticketUpdateRepo) ListByTicket(ctx context.Context, ticketID uint) ([]model.TicketUpdate, error) {
	var updates []model.TicketUpdate
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&updates).Error
	return updates, err
}
