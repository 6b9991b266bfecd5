package model

import "gorm.io/datatypes"

const (
	MaintenancePending   = "pending"
	MaintenanceCompleted = "completed"
)

// MaintenanceSchedule table maintenance_schedules
type MaintenanceSchedule struct {
	ID            uint           `gorm:"primaryKey"                                 json:"id"`
	ComputerID    uint           `gorm:"not null"                                   json:"computer_id"`
	ScheduledDate datatypes.Date `gorm:"type:date;not null"                         json:"scheduled_date"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Description   string         `gorm:"type:text"                                  json:"description"`

	Computer *Computer `gorm:"foreignKey:ComputerID" json:"computer,omitempty"`
}

func (MaintenanceSchedule) TableName() string { return "maintenance_schedules" }
