package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/auth"
	"github.com/globalreach/crm-api/internal/config"
	"github.com/globalreach/crm-api/internal/database"
	"github.com/globalreach/crm-api/internal/dto"
	"github.com/globalreach/crm-api/internal/middleware"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
	"github.com/globalreach/crm-api/internal/services"
)

type adminTestEnv struct {
	db          *gorm.DB
	handler     *AdminHandler
	authService *services.AuthService
	jwtSvc      *auth.Service
	router      *gin.Engine
}

func setupAdminTestEnv(t *testing.T) adminTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Admin{}))

	database.SetDB(db)

	jwtSvc := auth.NewService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "crm-api-test",
	})
	authService := services.NewAuthService(repository.NewAdminRepository(db), jwtSvc)
	handler := NewAdminHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/admin/login", handler.Login)

	protected := r.Group("/api/admin")
	protected.Use(middleware.RequireAuth(jwtSvc))
	{
		protected.POST("/register", middleware.RequireRole(models.RoleAdmin), handler.Register)
		protected.GET("", middleware.RequireRole(models.RoleAdmin), handler.ListAdmins)
		protected.GET("/sales-dashboard", middleware.RequireRole(models.RoleAdmin, models.RoleSales), handler.Dashboard("Sales Dashboard"))
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return adminTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		jwtSvc:      jwtSvc,
		router:      r,
	}
}

func (env adminTestEnv) register(t *testing.T, email string, role models.AdminRole) *models.Admin {
	t.Helper()
	admin, err := env.authService.Register(services.RegisterInput{
		Name:     "Test Admin",
		Email:    email,
		Password: "supersecret",
		Role:     role,
	})
	require.NoError(t, err)
	return admin
}

func (env adminTestEnv) doJSON(t *testing.T, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env adminTestEnv) login(t *testing.T, email, password string) dto.LoginResponse {
	t.Helper()
	w := env.doJSON(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAdminHandler_Login(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.register(t, "admin@example.com", models.RoleAdmin)

	response := env.login(t, "admin@example.com", "supersecret")

	require.NotEmpty(t, response.Token)
	require.Equal(t, "admin@example.com", response.Admin.Email)
	require.Equal(t, models.RoleAdmin, response.Admin.Role)
	require.True(t, response.ExpiresAt.After(time.Now()))
}

func TestAdminHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.register(t, "admin@example.com", models.RoleAdmin)

	w := env.doJSON(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "INVALID_CREDENTIALS", response["code"])
}

func TestAdminHandler_Register_RequiresAdminRole(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.register(t, "admin@example.com", models.RoleAdmin)
	env.register(t, "sales@example.com", models.RoleSales)

	payload := map[string]string{
		"name":     "New Agent",
		"email":    "agent@example.com",
		"password": "supersecret",
		"role":     "Agent",
	}

	// A Sales account may not create staff accounts
	salesToken := env.login(t, "sales@example.com", "supersecret").Token
	w := env.doJSON(t, http.MethodPost, "/api/admin/register", salesToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	// An Admin account may
	adminToken := env.login(t, "admin@example.com", "supersecret").Token
	w = env.doJSON(t, http.MethodPost, "/api/admin/register", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.AdminDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "agent@example.com", created.Email)
	require.Equal(t, models.RoleAgent, created.Role)
}

func TestAdminHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.register(t, "admin@example.com", models.RoleAdmin)
	adminToken := env.login(t, "admin@example.com", "supersecret").Token

	w := env.doJSON(t, http.MethodPost, "/api/admin/register", adminToken, map[string]string{
		"name":     "Duplicate",
		"email":    "admin@example.com",
		"password": "supersecret",
		"role":     "Sales",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminHandler_ListAdmins(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.register(t, "admin@example.com", models.RoleAdmin)
	env.register(t, "sales@example.com", models.RoleSales)
	adminToken := env.login(t, "admin@example.com", "supersecret").Token

	w := env.doJSON(t, http.MethodGet, "/api/admin", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var admins []dto.AdminDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &admins))
	require.Len(t, admins, 2)
}

func TestAdminHandler_Dashboard_RoleSets(t *testing.T) {
	env := setupAdminTestEnv(t)
	env.register(t, "sales@example.com", models.RoleSales)
	env.register(t, "agent@example.com", models.RoleAgent)

	salesToken := env.login(t, "sales@example.com", "supersecret").Token
	w := env.doJSON(t, http.MethodGet, "/api/admin/sales-dashboard", salesToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	agentToken := env.login(t, "agent@example.com", "supersecret").Token
	w = env.doJSON(t, http.MethodGet, "/api/admin/sales-dashboard", agentToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminHandler_ProtectedWithoutToken(t *testing.T) {
	env := setupAdminTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/api/admin", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
