package dto

import (
	"time"

	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/utils"
)

// UserDTO represents a client record in API responses
type UserDTO struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Firstname   string              `json:"firstname,omitempty"`
	Lastname    string              `json:"lastname,omitempty"`
	Email       string              `json:"email"`
	UserType    models.UserType     `json:"user_type"`
	PhoneNumber string              `json:"phone_number,omitempty"`
	Picture     string              `json:"picture,omitempty"`
	CV          string              `json:"cv,omitempty"`
	Address     string              `json:"address,omitempty"`
	Country     string              `json:"country,omitempty"`
	Priority    models.UserPriority `json:"priority"`
	Status      string              `json:"status"`

	CompanyName    string `json:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	ContactPerson  string `json:"contact_person,omitempty"`
	CompanyLogo    string `json:"company_logo,omitempty"`
	IsVerified     bool   `json:"is_verified"`

	AppliedJobs       []AppliedJobDTO       `json:"applied_jobs,omitempty"`
	SavedJobs         []SavedJobDTO         `json:"saved_jobs,omitempty"`
	ManagedCandidates []ManagedCandidateDTO `json:"managed_candidates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliedJobDTO represents a job application entry
type AppliedJobDTO struct {
	JobRef    string    `json:"job_ref"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

// SavedJobDTO represents a bookmarked job entry
type SavedJobDTO struct {
	JobRef  string    `json:"job_ref"`
	SavedAt time.Time `json:"saved_at"`
}

// ManagedCandidateDTO represents an agent's managed candidate
type ManagedCandidateDTO struct {
	ID         uint64              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email,omitempty"`
	Phone      string              `json:"phone,omitempty"`
	CV         string              `json:"cv,omitempty"`
	Skills     []string            `json:"skills,omitempty"`
	Experience string              `json:"experience,omitempty"`
	Priority   models.UserPriority `json:"priority"`
	AddedAt    time.Time           `json:"added_at"`
}

// UserListResponse represents a paginated list of client records
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Firstname:      user.Firstname,
		Lastname:       user.Lastname,
		Email:          user.Email,
		UserType:       user.UserType,
		PhoneNumber:    user.PhoneNumber,
		Picture:        user.Picture,
		CV:             user.CV,
		Address:        user.Address,
		Country:        user.Country,
		Priority:       user.Priority,
		Status:         user.Status,
		CompanyName:    user.CompanyName,
		CompanyAddress: user.CompanyAddress,
		ContactPerson:  user.ContactPerson,
		CompanyLogo:    user.CompanyLogo,
		IsVerified:     user.IsVerified,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	for _, aj := range user.AppliedJobs {
		dto.AppliedJobs = append(dto.AppliedJobs, AppliedJobDTO{
			JobRef:    aj.JobRef,
			Status:    aj.Status,
			AppliedAt: aj.AppliedAt,
		})
	}
	for _, sj := range user.SavedJobs {
		dto.SavedJobs = append(dto.SavedJobs, SavedJobDTO{
			JobRef:  sj.JobRef,
			SavedAt: sj.SavedAt,
		})
	}
	for _, mc := range user.ManagedCandidates {
		dto.ManagedCandidates = append(dto.ManagedCandidates, ManagedCandidateDTO{
			ID:         mc.ID,
			Name:       mc.Name,
			Email:      mc.Email,
			Phone:      mc.Phone,
			CV:         mc.CV,
			Skills:     mc.Skills,
			Experience: mc.Experience,
			Priority:   mc.Priority,
			AddedAt:    mc.AddedAt,
		})
	}

	return dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
