package model

import "time"

const (
	RoleAdmin      = "admin"
	RoleStudent    = "student"
	RoleStaff      = "staff"
	RoleTechnician = "technician"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleStaff, RoleTechnician:
		return true
	}
	return false
}

// User table users
type User struct {
	ID        uint      `gorm:"primaryKey"                                  json:"id"`
	Name      string    `gorm:"type:varchar(100);not null"                  json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	Password  string    `gorm:"type:varchar(255);not null"                  json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"                     json:"created_at"`
}

func (User) TableName() string { return "users" }
