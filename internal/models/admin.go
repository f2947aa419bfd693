package models

import "time"

type AdminRole string

const (
	RoleAdmin AdminRole = "Admin"
	RoleSales AdminRole = "Sales"
	RoleAgent AdminRole = "Agent"
)

// AdminRoles lists every valid staff role
var AdminRoles = []AdminRole{RoleAdmin, RoleSales, RoleAgent}

// Admin is an internal staff account, separate from client User records
type Admin struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         AdminRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
