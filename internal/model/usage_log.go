package model

import "time"

// UsageLog table pc_usage_logs. A nil LogoutTime marks an open session.
type UsageLog struct {
	ID         uint       `gorm:"primaryKey"     json:"id"`
	ComputerID uint       `gorm:"not null;index" json:"computer_id"`
	UserID     uint       `gorm:"not null"       json:"user_id"`
	LoginTime  time.Time  `gorm:"not null"       json:"login_time"`
	LogoutTime *time.Time `json:"logout_time"`

	Computer *Computer `gorm:"foreignKey:ComputerID" json:"computer,omitempty"`
	User     *User     `gorm:"foreignKey:UserID"     json:"user,omitempty"`
}

func (UsageLog) TableName() string { return "pc_usage_logs" }
