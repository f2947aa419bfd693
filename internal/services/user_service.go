package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already exists")
	ErrOnlyCandidatesSaveJobs = errors.New("only candidates can save jobs")
	ErrOnlyAgentsManage       = errors.New("only agents can manage candidates")
)

// UserService handles client record business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a client record
type CreateUserInput struct {
	Name           string
	Firstname      string
	Lastname       string
	Email          string
	Password       string
	UserType       models.UserType
	PhoneNumber    string
	Picture        string
	CV             string
	Address        string
	Country        string
	Priority       models.UserPriority
	Status         string
	CompanyName    string
	CompanyAddress string
	ContactPerson  string
	CompanyLogo    string
}

// UpdateUserInput represents input for updating a client record. Nil fields
// are left unchanged; a non-empty Password triggers a re-hash.
type UpdateUserInput struct {
	Name           *string
	Firstname      *string
	Lastname       *string
	Email          *string
	Password       *string
	UserType       *models.UserType
	PhoneNumber    *string
	Picture        *string
	CV             *string
	Address        *string
	Country        *string
	Priority       *models.UserPriority
	Status         *string
	CompanyName    *string
	CompanyAddress *string
	ContactPerson  *string
	CompanyLogo    *string
	IsVerified     *bool
}

// ManagedCandidateInput represents a candidate record added by an agent
type ManagedCandidateInput struct {
	Name       string
	Email      string
	Phone      string
	CV         string
	Skills     []string
	Experience string
	Priority   models.UserPriority
}

// CreateUser validates role-conditional fields, hashes the password, and
// persists the record
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if input.UserType == "" {
		input.UserType = models.UserTypeCandidate
	}
	if input.Priority == "" {
		input.Priority = models.UserPriorityLow
	}
	if input.Status == "" {
		input.Status = "New Lead"
	}

	if err := validateUserFields(input.Name, input.Email, input.Password, input.UserType,
		input.Firstname, input.Lastname,
		input.CompanyName, input.CompanyAddress, input.ContactPerson,
		input.Priority, input.Status, true); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:           input.Name,
		Firstname:      input.Firstname,
		Lastname:       input.Lastname,
		Email:          input.Email,
		PasswordHash:   string(hashed),
		UserType:       input.UserType,
		PhoneNumber:    input.PhoneNumber,
		Picture:        input.Picture,
		CV:             input.CV,
		Address:        input.Address,
		Country:        input.Country,
		Priority:       input.Priority,
		Status:         input.Status,
		CompanyName:    input.CompanyName,
		CompanyAddress: input.CompanyAddress,
		ContactPerson:  input.ContactPerson,
		CompanyLogo:    input.CompanyLogo,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a client record by ID
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns client records matching the filter
func (s *UserService) ListUsers(filter repository.UserFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser merges the provided fields into a client record. The password
// hash is only recomputed when a new password is supplied.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Firstname != nil {
		user.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		user.Lastname = *input.Lastname
	}
	if input.UserType != nil {
		user.UserType = *input.UserType
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Picture != nil {
		user.Picture = *input.Picture
	}
	if input.CV != nil {
		user.CV = *input.CV
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.Priority != nil {
		user.Priority = *input.Priority
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.CompanyName != nil {
		user.CompanyName = *input.CompanyName
	}
	if input.CompanyAddress != nil {
		user.CompanyAddress = *input.CompanyAddress
	}
	if input.ContactPerson != nil {
		user.ContactPerson = *input.ContactPerson
	}
	if input.CompanyLogo != nil {
		user.CompanyLogo = *input.CompanyLogo
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}

	if input.Password != nil && *input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := validateUserFields(user.Name, user.Email, "", user.UserType,
		user.Firstname, user.Lastname,
		user.CompanyName, user.CompanyAddress, user.ContactPerson,
		user.Priority, user.Status, false); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser permanently removes a client record. Tasks referencing the user
// are not touched; their client snapshot stays as written.
func (s *UserService) DeleteUser(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// VerifyPassword compares a plaintext password against the stored hash
func (s *UserService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// SaveJob bookmarks a job for a candidate. Saving the same job twice is a
// no-op.
func (s *UserService) SaveJob(userID uint64, jobRef string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeCandidate {
		return nil, ErrOnlyCandidatesSaveJobs
	}
	if strings.TrimSpace(jobRef) == "" {
		return nil, newValidationError([]string{"jobRef is required"})
	}

	saved, err := s.userRepo.HasSavedJob(userID, jobRef)
	if err != nil {
		return nil, fmt.Errorf("failed to check saved jobs: %w", err)
	}
	if !saved {
		if err := s.userRepo.AddSavedJob(&models.SavedJob{UserID: userID, JobRef: jobRef}); err != nil {
			return nil, fmt.Errorf("failed to save job: %w", err)
		}
	}

	return s.GetUser(userID)
}

// UnsaveJob removes a candidate's bookmarked job
func (s *UserService) UnsaveJob(userID uint64, jobRef string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeCandidate {
		return nil, ErrOnlyCandidatesSaveJobs
	}

	if err := s.userRepo.RemoveSavedJob(userID, jobRef); err != nil {
		return nil, fmt.Errorf("failed to unsave job: %w", err)
	}

	return s.GetUser(userID)
}

// AddManagedCandidate attaches a candidate record to an agent
func (s *UserService) AddManagedCandidate(userID uint64, input ManagedCandidateInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeAgent {
		return nil, ErrOnlyAgentsManage
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, newValidationError([]string{"name is required"})
	}

	if input.Priority == "" {
		input.Priority = models.UserPriorityLow
	}

	candidate := &models.ManagedCandidate{
		UserID:     userID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		CV:         input.CV,
		Skills:     input.Skills,
		Experience: input.Experience,
		Priority:   input.Priority,
	}
	if err := s.userRepo.AddManagedCandidate(candidate); err != nil {
		return nil, fmt.Errorf("failed to add managed candidate: %w", err)
	}

	return s.GetUser(userID)
}

func validateUserFields(name, email, password string, userType models.UserType,
	firstname, lastname, companyName, companyAddress, contactPerson string,
	priority models.UserPriority, status string, requirePassword bool) error {

	var messages []string

	if strings.TrimSpace(name) == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(email) == "" {
		messages = append(messages, "email is required")
	}
	if requirePassword && password == "" {
		messages = append(messages, "password is required")
	}

	switch userType {
	case models.UserTypeCandidate:
		if strings.TrimSpace(firstname) == "" {
			messages = append(messages, "firstname is required for candidates")
		}
		if strings.TrimSpace(lastname) == "" {
			messages = append(messages, "lastname is required for candidates")
		}
	case models.UserTypeAgent:
		if strings.TrimSpace(companyName) == "" {
			messages = append(messages, "companyName is required for agents")
		}
		if strings.TrimSpace(companyAddress) == "" {
			messages = append(messages, "companyAddress is required for agents")
		}
		if strings.TrimSpace(contactPerson) == "" {
			messages = append(messages, "contactPerson is required for agents")
		}
	default:
		messages = append(messages, fmt.Sprintf("invalid userType: %s", userType))
	}

	switch priority {
	case models.UserPriorityLow, models.UserPriorityMedium, models.UserPriorityHigh:
	default:
		messages = append(messages, fmt.Sprintf("invalid priority: %s", priority))
	}

	validStatus := false
	for _, ps := range models.PipelineStatuses {
		if ps == status {
			validStatus = true
			break
		}
	}
	if !validStatus {
		messages = append(messages, fmt.Sprintf("invalid status: %s", status))
	}

	if len(messages) > 0 {
		return newValidationError(messages)
	}
	return nil
}
