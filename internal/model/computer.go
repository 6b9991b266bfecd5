package model

import "time"

const (
	ComputerOperational = "operational"
	ComputerFaulty      = "faulty"
	ComputerMaintenance = "maintenance"
)

// Computer table computers. ComputerID is the human readable workstation tag
// printed on the machine, e.g. LAB-A-01.
type Computer struct {
	ID              uint       `gorm:"primaryKey"                                      json:"id"`
	ComputerID      string     `gorm:"column:computer_id;type:varchar(50);not null;uniqueIndex" json:"computer_id"`
	LabNumber       string     `gorm:"type:varchar(50);not null"                       json:"lab_number"`
	Status          string     `gorm:"type:varchar(20);not null;default:'operational'" json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance"`
}

func (Computer) TableName() string { return "computers" }
