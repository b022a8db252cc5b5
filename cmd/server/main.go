package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/pronetwork/backend/internal/config"
	"github.com/pronetwork/backend/internal/database"
	"github.com/pronetwork/backend/internal/events"
	"github.com/pronetwork/backend/internal/handlers"
	"github.com/pronetwork/backend/internal/middleware"
	"github.com/pronetwork/backend/internal/realtime"
	"github.com/pronetwork/backend/internal/repositories"
	"github.com/pronetwork/backend/internal/services"
	"github.com/pronetwork/backend/pkg/logger"
)

func main() {
	envLoadErr := godotenv.Load()

	logger.Init()
	defer logger.Sync()

	if envLoadErr != nil {
		logger.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	if err := cfg.ValidateProductionSecurity(); err != nil {
		logger.Fatal("Production security validation failed", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	connectionRepo := repositories.NewConnectionRepository(db)
	userRepo := repositories.NewUserRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	blockRepo := repositories.NewBlockRepository(db)
	postRepo := repositories.NewPostRepository(db)

	bus := events.NewBus()
	hub := realtime.NewHub()
	go hub.Forward(bus.Subscribe())

	notificationService := services.NewNotificationService(notificationRepo, userRepo, postRepo, bus)
	connectionService := services.NewConnectionService(connectionRepo, userRepo, blockRepo, notificationService)

	auth := middleware.NewAuth(cfg.JWTSecret, userRepo)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, cfg.GetRateLimitWindow())

	app := fiber.New(fiber.Config{
		AppName:               "pronetwork-backend",
		DisableStartupMessage: cfg.AppEnv == "production",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	manager := handlers.NewManager(cfg, connectionService, notificationService, hub)
	manager.RegisterRoutes(app, auth, limiter)

	go func() {
		logger.Info("Server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logger.Fatal("Server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if err := app.Shutdown(); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	bus.Close()
	logger.Info("Server stopped")
}
