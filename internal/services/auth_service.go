package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/auth"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so that login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminEmailTaken    = errors.New("email already exists")
)

// AuthService handles staff authentication and account management
type AuthService struct {
	adminRepo repository.AdminRepository
	jwtSvc    *auth.Service
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repository.AdminRepository, jwtSvc *auth.Service) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		jwtSvc:    jwtSvc,
	}
}

// LoginInput holds the credentials for authentication
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the issued token alongside the authenticated account
type LoginResult struct {
	Admin     *models.Admin
	Token     string
	ExpiresAt time.Time
}

// RegisterInput represents the fields for creating a staff account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.AdminRole
}

// UpdateAdminInput represents input for updating a staff account. Nil fields
// are left unchanged; a non-empty Password triggers a re-hash.
type UpdateAdminInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *models.AdminRole
}

// Login verifies credentials and issues a bearer token
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	admin, err := s.adminRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtSvc.Generate(admin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// Register creates a new staff account
func (s *AuthService) Register(input RegisterInput) (*models.Admin, error) {
	var messages []string
	if strings.TrimSpace(input.Name) == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		messages = append(messages, "email is required")
	}
	if input.Password == "" {
		messages = append(messages, "password is required")
	}
	if !isValidAdminRole(input.Role) {
		messages = append(messages, fmt.Sprintf("invalid role: %s", input.Role))
	}
	if len(messages) > 0 {
		return nil, newValidationError(messages)
	}

	if _, err := s.adminRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrAdminEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         input.Role,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

// GetAdmin retrieves a staff account by ID
func (s *AuthService) GetAdmin(id uint64) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return admin, nil
}

// ListAdmins returns every staff account
func (s *AuthService) ListAdmins() ([]models.Admin, error) {
	admins, err := s.adminRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// UpdateAdmin merges the provided fields into a staff account
func (s *AuthService) UpdateAdmin(id uint64, input UpdateAdminInput) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if input.Email != nil && *input.Email != admin.Email {
		if _, err := s.adminRepo.FindByEmail(*input.Email); err == nil {
			return nil, ErrAdminEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		admin.Email = *input.Email
	}

	if input.Name != nil {
		admin.Name = *input.Name
	}
	if input.Role != nil {
		if !isValidAdminRole(*input.Role) {
			return nil, newValidationError([]string{fmt.Sprintf("invalid role: %s", *input.Role)})
		}
		admin.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		admin.PasswordHash = string(hashed)
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}

	return admin, nil
}

// DeleteAdmin permanently removes a staff account
func (s *AuthService) DeleteAdmin(id uint64) error {
	if _, err := s.adminRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to find admin: %w", err)
	}

	if err := s.adminRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	return nil
}

func isValidAdminRole(role models.AdminRole) bool {
	for _, r := range models.AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}
