package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/globalreach/crm-api/internal/auth"
	"github.com/globalreach/crm-api/internal/config"
	apierrors "github.com/globalreach/crm-api/internal/errors"
	"github.com/globalreach/crm-api/internal/models"
)

func newJWTService(expiration time.Duration) *auth.Service {
	return auth.NewService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "crm-api-test",
	})
}

func newAuthRouter(jwtSvc *auth.Service, roles ...models.AdminRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{RequireAuth(jwtSvc)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, ok := GetAdminClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin_id": claims.AdminID})
	})

	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter(newJWTService(time.Hour))

	w := doRequest(r, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	apiErr := decodeAPIError(t, w)
	require.Equal(t, "Not authorized", apiErr.Message)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(newJWTService(time.Hour))

	w := doRequest(r, "garbage")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	apiErr := decodeAPIError(t, w)
	require.Equal(t, "Invalid token", apiErr.Message)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := newJWTService(-time.Minute)
	token, _, err := expired.Generate(&models.Admin{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	r := newAuthRouter(newJWTService(time.Hour))
	w := doRequest(r, token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	apiErr := decodeAPIError(t, w)
	require.Equal(t, "Session expired. Please login again.", apiErr.Message)
	require.Equal(t, apierrors.ErrCodeTokenExpired, apiErr.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtSvc := newJWTService(time.Hour)
	token, _, err := jwtSvc.Generate(&models.Admin{ID: 7, Role: models.RoleAdmin})
	require.NoError(t, err)

	r := newAuthRouter(jwtSvc)
	w := doRequest(r, token)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]uint64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint64(7), body["admin_id"])
}

func TestRequireRole_Denied(t *testing.T) {
	jwtSvc := newJWTService(time.Hour)
	token, _, err := jwtSvc.Generate(&models.Admin{ID: 7, Role: models.RoleAgent})
	require.NoError(t, err)

	r := newAuthRouter(jwtSvc, models.RoleAdmin, models.RoleSales)
	w := doRequest(r, token)

	require.Equal(t, http.StatusForbidden, w.Code)
	apiErr := decodeAPIError(t, w)
	require.Equal(t, "Access denied", apiErr.Message)
}

func TestRequireRole_Allowed(t *testing.T) {
	jwtSvc := newJWTService(time.Hour)
	token, _, err := jwtSvc.Generate(&models.Admin{ID: 7, Role: models.RoleSales})
	require.NoError(t, err)

	r := newAuthRouter(jwtSvc, models.RoleAdmin, models.RoleSales)
	w := doRequest(r, token)

	require.Equal(t, http.StatusOK, w.Code)
}
