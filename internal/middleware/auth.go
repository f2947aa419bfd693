package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/globalreach/crm-api/internal/auth"
	"github.com/globalreach/crm-api/internal/constants"
	apierrors "github.com/globalreach/crm-api/internal/errors"
	"github.com/globalreach/crm-api/internal/models"
)

// RequireAuth validates the bearer token and attaches its claims to the
// request context. Expired tokens get a distinct message so the UI can
// prompt for a fresh login.
func RequireAuth(jwtSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apierrors.Unauthorized(c, "Not authorized")
			c.Abort()
			return
		}

		claims, err := jwtSvc.Validate(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				apierrors.TokenExpired(c, "Session expired. Please login again.")
			} else {
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAdminClaims, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role is not in the
// allowed set
func RequireRole(roles ...models.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAdminClaims(c)
		if !ok {
			apierrors.Unauthorized(c, "Not authorized")
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Access denied")
		c.Abort()
	}
}

// GetAdminClaims retrieves the authenticated staff claims from context
func GetAdminClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyAdminClaims)
	if !exists {
		return nil, false
	}

	claims, ok := value.(*auth.Claims)
	return claims, ok
}
