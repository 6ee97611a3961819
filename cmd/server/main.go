package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/ymaeda/pomodoro-tracker/internal/config"
	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/database"
	"github.com/ymaeda/pomodoro-tracker/internal/handlers"
	"github.com/ymaeda/pomodoro-tracker/internal/middleware"
	"github.com/ymaeda/pomodoro-tracker/internal/repository"
	"github.com/ymaeda/pomodoro-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	pomodoroRepo := repository.NewPomodoroRepository(db)

	// Initialize services
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	pomodoroService := services.NewPomodoroService(pomodoroRepo, taskRepo)
	statsService := services.NewStatsService(taskRepo, pomodoroRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, aiService)
	pomodoroHandler := handlers.NewPomodoroHandler(pomodoroService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Pomodoro Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/suggest", taskHandler.SuggestTasks)
			tasks.PUT("/:id", middleware.RequireTaskAccess(taskService), taskHandler.UpdateTask)
			tasks.POST("/:id/toggle", middleware.RequireTaskAccess(taskService), taskHandler.ToggleTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(taskService), taskHandler.DeleteTask)
		}

		// Pomodoro routes (protected)
		pomodoros := api.Group("/pomodoros")
		pomodoros.Use(middleware.RequireAuth())
		{
			pomodoros.POST("", pomodoroHandler.Start)
			pomodoros.POST("/:id/complete", pomodoroHandler.Complete)
		}

		// Stats routes (protected)
		stats := api.Group("/stats")
		stats.Use(middleware.RequireAuth())
		{
			stats.GET("", statsHandler.GetStats)
			stats.GET("/weekly", statsHandler.GetWeeklySeries)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
