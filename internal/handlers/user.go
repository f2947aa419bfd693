package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/globalreach/crm-api/internal/dto"
	apierrors "github.com/globalreach/crm-api/internal/errors"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
	"github.com/globalreach/crm-api/internal/services"
	"github.com/globalreach/crm-api/internal/utils"
)

// UserHandler coordinates client-record HTTP handlers
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest is the JSON body for creating a client record
type CreateUserRequest struct {
	Name           string              `json:"name"`
	Firstname      string              `json:"firstname"`
	Lastname       string              `json:"lastname"`
	Email          string              `json:"email"`
	Password       string              `json:"password"`
	UserType       models.UserType     `json:"user_type"`
	PhoneNumber    string              `json:"phone_number"`
	Picture        string              `json:"picture"`
	CV             string              `json:"cv"`
	Address        string              `json:"address"`
	Country        string              `json:"country"`
	Priority       models.UserPriority `json:"priority"`
	Status         string              `json:"status"`
	CompanyName    string              `json:"company_name"`
	CompanyAddress string              `json:"company_address"`
	ContactPerson  string              `json:"contact_person"`
	CompanyLogo    string              `json:"company_logo"`
}

// UpdateUserRequest is the JSON body for updating a client record
type UpdateUserRequest struct {
	Name           *string              `json:"name"`
	Firstname      *string              `json:"firstname"`
	Lastname       *string              `json:"lastname"`
	Email          *string              `json:"email"`
	Password       *string              `json:"password"`
	UserType       *models.UserType     `json:"user_type"`
	PhoneNumber    *string              `json:"phone_number"`
	Picture        *string              `json:"picture"`
	CV             *string              `json:"cv"`
	Address        *string              `json:"address"`
	Country        *string              `json:"country"`
	Priority       *models.UserPriority `json:"priority"`
	Status         *string              `json:"status"`
	CompanyName    *string              `json:"company_name"`
	CompanyAddress *string              `json:"company_address"`
	ContactPerson  *string              `json:"contact_person"`
	CompanyLogo    *string              `json:"company_logo"`
	IsVerified     *bool                `json:"is_verified"`
}

// ListUsers returns client records, optionally filtered by user type
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.UserFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if ut := c.Query("user_type"); ut != "" {
		userType := models.UserType(ut)
		filter.UserType = &userType
	}

	users, total, err := h.userService.ListUsers(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users: dto.ToUserDTOs(users),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUser returns a single client record
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates a new client record
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Name:           req.Name,
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Email:          req.Email,
		Password:       req.Password,
		UserType:       req.UserType,
		PhoneNumber:    req.PhoneNumber,
		Picture:        req.Picture,
		CV:             req.CV,
		Address:        req.Address,
		Country:        req.Country,
		Priority:       req.Priority,
		Status:         req.Status,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		ContactPerson:  req.ContactPerson,
		CompanyLogo:    req.CompanyLogo,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser merges fields into a client record
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		Name:           req.Name,
		Firstname:      req.Firstname,
		Lastname:       req.Lastname,
		Email:          req.Email,
		Password:       req.Password,
		UserType:       req.UserType,
		PhoneNumber:    req.PhoneNumber,
		Picture:        req.Picture,
		CV:             req.CV,
		Address:        req.Address,
		Country:        req.Country,
		Priority:       req.Priority,
		Status:         req.Status,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		ContactPerson:  req.ContactPerson,
		CompanyLogo:    req.CompanyLogo,
		IsVerified:     req.IsVerified,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser permanently removes a client record. Tasks that reference the
// user keep their snapshot fields.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// SaveJob bookmarks a job for a candidate
func (h *UserHandler) SaveJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		JobRef string `json:"job_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.SaveJob(id, req.JobRef)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UnsaveJob removes a candidate's bookmarked job
func (h *UserHandler) UnsaveJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.UnsaveJob(id, c.Param("jobRef"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// AddManagedCandidate attaches a candidate record to an agent
func (h *UserHandler) AddManagedCandidate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name       string              `json:"name" binding:"required"`
		Email      string              `json:"email"`
		Phone      string              `json:"phone"`
		CV         string              `json:"cv"`
		Skills     []string            `json:"skills"`
		Experience string              `json:"experience"`
		Priority   models.UserPriority `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.AddManagedCandidate(id, services.ManagedCandidateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		CV:         req.CV,
		Skills:     req.Skills,
		Experience: req.Experience,
		Priority:   req.Priority,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondUserError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Messages)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrOnlyCandidatesSaveJobs),
		errors.Is(err, services.ErrOnlyAgentsManage):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
