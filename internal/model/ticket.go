package model

import "time"

const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

const (
	CategoryHardware = "Hardware"
	CategorySoftware = "Software"
	CategoryNetwork  = "Network"
	CategoryOther    = "Other"
)

const (
	SourceManual    = "manual"
	SourceTelemetry = "telemetry"
)

func ValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Ticket table tickets
type Ticket struct {
	ID            uint       `gorm:"primaryKey"                                  json:"id"`
	ComputerID    uint       `gorm:"not null"                                    json:"computer_id"`
	ReportedBy    uint       `gorm:"not null"                                    json:"reported_by"`
	AssignedTo    *uint      `gorm:"index"                                       json:"assigned_to"`
	IssueCategory string     `gorm:"type:varchar(30);not null"                   json:"issue_category"`
	Description   string     `gorm:"type:text;not null"                          json:"description"`
	Priority      string     `gorm:"type:varchar(10);not null;default:'medium'"  json:"priority"`
	Status        string     `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Source        string     `gorm:"type:varchar(20);not null;default:'manual'"  json:"source"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime"                     json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at"`

	Computer *Computer `gorm:"foreignKey:ComputerID" json:"computer,omitempty"`
	Reporter *User     `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

func (Ticket) TableName() string { return "tickets" }

// TicketUpdate table ticket_updates, the audit trail of a ticket.
type TicketUpdate struct {
	ID         uint      `gorm:"primaryKey"              json:"id"`
	TicketID   uint      `gorm:"not null;index"          json:"ticket_id"`
	UpdatedBy  uint      `gorm:"not null"                json:"updated_by"`
	UpdateText string    `gorm:"type:text;not null"      json:"update_text"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Author *User `gorm:"foreignKey:UpdatedBy" json:"author,omitempty"`
}

func (TicketUpdate) TableName() string { return "ticket_updates" }
