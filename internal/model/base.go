package model

import "gorm.io/gorm"

// AllModels lists every table owned by the service, in dependency order.
// Repository tests AutoMigrate from it; production schemas come from the
// embedded migrations.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Computer{},
		&Ticket{},
		&TicketUpdate{},
		&UsageLog{},
		&MaintenanceSchedule{},
	}
}

// AutoMigrate creates the schema from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
