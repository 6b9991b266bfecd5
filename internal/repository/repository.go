package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups every repository so services can depend on one value.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Computer     ComputerRepository
	Ticket       TicketRepository
	TicketUpdate TicketUpdateRepository
	UsageLog     UsageLogRepository
	Maintenance  MaintenanceRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Computer:     NewComputerRepo(db),
		Ticket:       NewTicketRepo(db),
		TicketUpdate: NewTicketUpdateRepo(db),
		UsageLog:     NewUsageLogRepo(db),
		Maintenance:  NewMaintenanceRepo(db),
	}
}

// Transaction runs fn against repositories bound to a single transaction.
// A Repository assembled without a database (unit tests) runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
