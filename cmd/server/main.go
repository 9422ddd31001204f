package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "fleetdesk/docs" // swagger docs

	"fleetdesk/internal/auth"
	"fleetdesk/internal/cache"
	"fleetdesk/internal/config"
	"fleetdesk/internal/db"
	"fleetdesk/internal/handler"
	"fleetdesk/internal/logger"
	"fleetdesk/internal/model"
	"fleetdesk/internal/queue"
	"fleetdesk/internal/repository"
	"fleetdesk/internal/router"
	"fleetdesk/internal/service"
	"fleetdesk/internal/upload"
)

// @title Fleetdesk API
// @version 1.0
// @description Multi-tenant task and vehicle management API with JWT authentication.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.IsProduction()); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Vehicle{},
		&model.VehicleFile{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	publisher := queue.NewPublisher(cfg.AMQPURL)
	uploads := upload.NewStore(cfg.UploadDir)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, cacheClient, publisher)
	vehicleService := service.NewVehicleService(vehicleRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, uploads)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, uploads)

	e := echo.New()
	e.Use(middleware.RequestID())

	router.Register(e, jwtService, authHandler, userHandler, taskHandler, vehicleHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
