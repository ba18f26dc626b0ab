package main

import (
	"log"
	"time"

	"canteen/internal/config"
	"canteen/internal/database"
	"canteen/internal/handlers"
	"canteen/internal/migrations"
	"canteen/internal/redis"
	"canteen/internal/repository"
	"canteen/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Second
	userService := services.NewUserService(userRepo, redisClient, sessionTTL)
	menuService := services.NewMenuService(menuRepo)
	notifier := services.NewNotificationService(redisClient)
	orderService := services.NewOrderService(orderRepo, menuRepo, userRepo, notifier)
	settingsService := services.NewSettingsService(settingsRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	eventsHandler := handlers.NewEventsHandler(redisClient)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		// Public endpoints
		api.POST("/users/register", userHandler.Register)
		api.POST("/users/login", userHandler.Login)
		api.GET("/menu", menuHandler.List)
		api.GET("/menu/:id", menuHandler.Get)
		api.GET("/settings", settingsHandler.Get)

		// Authenticated endpoints
		auth := api.Group("", handlers.AuthRequired(userService))
		{
			auth.POST("/users/logout", userHandler.Logout)

			auth.GET("/orders", orderHandler.List)
			auth.POST("/orders", orderHandler.Create)
			auth.POST("/orders/:id/otp/regenerate", orderHandler.RegenerateOTP)
			auth.DELETE("/orders/:id", orderHandler.Delete)

			auth.GET("/events", eventsHandler.Stream)

			staff := auth.Group("", handlers.RequireStaff())
			{
				staff.GET("/orders/:id", orderHandler.Get)
				staff.PUT("/orders/:id/status", orderHandler.UpdateStatus)
				staff.POST("/orders/:id/verify", orderHandler.Verify)
			}

			admin := auth.Group("", handlers.RequireAdmin())
			{
				admin.GET("/users", userHandler.List)
				admin.DELETE("/users/:id", userHandler.Delete)
				admin.POST("/menu", menuHandler.Create)
				admin.PUT("/menu/:id", menuHandler.Update)
				admin.DELETE("/menu/:id", menuHandler.Delete)
				admin.PUT("/settings", settingsHandler.Update)
			}
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
