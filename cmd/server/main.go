package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/globalreach/crm-api/internal/auth"
	"github.com/globalreach/crm-api/internal/config"
	"github.com/globalreach/crm-api/internal/database"
	"github.com/globalreach/crm-api/internal/handlers"
	"github.com/globalreach/crm-api/internal/logger"
	"github.com/globalreach/crm-api/internal/middleware"
	"github.com/globalreach/crm-api/internal/models"
	"github.com/globalreach/crm-api/internal/repository"
	"github.com/globalreach/crm-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	if err := database.Connect(cfg, zapLogger); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db := database.GetDB()

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	jwtSvc := auth.NewService(cfg.JWT)
	taskService := services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(adminRepo, jwtSvc)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(authService)

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(zapLogger))
	r.Use(logger.Recovery(zapLogger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": cfg.App.Name + " is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.RequireAuth(jwtSvc))
			{
				protected.POST("/register", middleware.RequireRole(models.RoleAdmin), adminHandler.Register)
				protected.GET("", middleware.RequireRole(models.RoleAdmin), adminHandler.ListAdmins)
				protected.PUT("/:id", middleware.RequireRole(models.RoleAdmin), adminHandler.UpdateAdmin)
				protected.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), adminHandler.DeleteAdmin)

				protected.GET("/admin-dashboard", middleware.RequireRole(models.RoleAdmin), adminHandler.Dashboard("Admin Dashboard"))
				protected.GET("/sales-dashboard", middleware.RequireRole(models.RoleAdmin, models.RoleSales), adminHandler.Dashboard("Sales Dashboard"))
				protected.GET("/agent-dashboard", middleware.RequireRole(models.RoleAdmin, models.RoleAgent), adminHandler.Dashboard("Agent Dashboard"))
			}
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(jwtSvc))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats/overview", taskHandler.TaskStats)
			tasks.GET("/status/overdue", taskHandler.ListOverdueTasks)
			tasks.GET("/client/:clientId", taskHandler.ListTasksByClient)
			tasks.GET("/assigned/:assignee", taskHandler.ListTasksByAssignee)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(jwtSvc))
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.POST("/:id/saved-jobs", userHandler.SaveJob)
			users.DELETE("/:id/saved-jobs/:jobRef", userHandler.UnsaveJob)
			users.POST("/:id/managed-candidates", userHandler.AddManagedCandidate)
		}
	}

	// Start server
	zapLogger.Info("Server starting", zap.String("port", cfg.App.Port))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
