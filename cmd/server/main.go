package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/app"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/scheduler"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Workout Tracker API
// @version 1.0
// @description API for planning workouts with one-off dates or weekly recurring alerts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("Starting Workout Tracker server", "database_driver", cfg.Database.Driver, "notification_driver", cfg.Notification.Driver)
	if cfg.JWT.Secret == "" {
		appLog.Warn("jwt.secret is empty; every authenticated request will be rejected")
	}

	// --- Database Connection ---
	backend, err := app.OpenBackend(context.Background(), cfg.Database, appLog)
	if err != nil {
		appLog.Fatal("Could not open database", "error", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			appLog.Error("Failed to close database", "error", err)
		}
	}()

	// --- Initialize Services ---
	services := app.NewServices(backend.Repos, nil)

	// --- Notification Scheduler ---
	sender, closeSender, err := app.NewSender(cfg.Notification, appLog)
	if err != nil {
		appLog.Fatal("Could not create notification sender", "error", err)
	}
	defer func() {
		if err := closeSender(); err != nil {
			appLog.Error("Failed to close notification sender", "error", err)
		}
	}()

	var runner *scheduler.Runner
	if cfg.Scheduler.Enabled {
		location, _ := cfg.Scheduler.Location() // checked by config.Validate
		scanner := service.NewNotificationScanner(backend.Repos.ScheduledDates, backend.Repos.RecurringAlerts, sender, location, nil, appLog)
		runner, err = scheduler.New(cfg.Scheduler.Spec, scanner, cfg.Scheduler.ScanTimeout, appLog)
		if err != nil {
			appLog.Fatal("Could not create scheduler", "error", err)
		}
		runner.Start()
	} else {
		appLog.Info("Notification scheduler disabled")
	}

	// --- Initialize Gin Engine ---
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default() // Includes Logger and Recovery middleware
	router.Use(api.CORSMiddleware(cfg.Server.CORSOrigins))
	api.SetupRoutes(router, cfg.JWT.Secret, services, backend.Ping, appLog)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLog.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("ListenAndServe failed", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if runner != nil {
		runner.Stop(ctxShutdown)
	}
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}
	appLog.Info("Server exiting")
}
