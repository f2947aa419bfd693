package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/globalreach/crm-api/internal/dto"
	apierrors "github.com/globalreach/crm-api/internal/errors"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/services"
)

// AdminHandler coordinates staff authentication and account management
type AdminHandler struct {
	authService *services.AuthService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// Login authenticates a staff account and issues a bearer token
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Admin:     dto.ToAdminDTO(*result.Admin),
	})
}

// Register creates a new staff account. Reachable only through the
// Admin-role gate.
func (h *AdminHandler) Register(c *gin.Context) {
	var req struct {
		Name     string           `json:"name"`
		Email    string           `json:"email"`
		Password string           `json:"password"`
		Role     models.AdminRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	admin, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdminDTO(*admin))
}

// ListAdmins returns every staff account
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.authService.ListAdmins()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch admins")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDTOs(admins))
}

// UpdateAdmin merges fields into a staff account
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name     *string           `json:"name"`
		Email    *string           `json:"email"`
		Password *string           `json:"password"`
		Role     *models.AdminRole `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	admin, err := h.authService.UpdateAdmin(id, services.UpdateAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDTO(*admin))
}

// DeleteAdmin permanently removes a staff account
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.authService.DeleteAdmin(id); err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}

// Dashboard returns a role-gated placeholder payload
func (h *AdminHandler) Dashboard(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": name})
	}
}

func respondAdminError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Messages)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrAdminNotFound):
		apierrors.NotFound(c, "Admin not found")
	case errors.Is(err, services.ErrAdminEmailTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
