package dto

import (
	"time"

	"github.com/globalreach/crm-api/internal/models"
)

// AdminDTO represents a staff account in API responses
type AdminDTO struct {
	ID        uint64           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      models.AdminRole `json:"role"`
	CreatedAt time.Time        `json:"created_at"`
}

// LoginResponse carries the issued bearer token and the account it belongs to
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     AdminDTO  `json:"admin"`
}

// ToAdminDTO converts an Admin model to AdminDTO
func ToAdminDTO(admin models.Admin) AdminDTO {
	return AdminDTO{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
	}
}

// ToAdminDTOs converts a slice of admins
func ToAdminDTOs(admins []models.Admin) []AdminDTO {
	dtos := make([]AdminDTO, len(admins))
	for i, admin := range admins {
		dtos[i] = ToAdminDTO(admin)
	}
	return dtos
}
