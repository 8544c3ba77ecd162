package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/investbuddy/circles-api/internal/api"
	"github.com/investbuddy/circles-api/internal/api/service"
	"github.com/investbuddy/circles-api/internal/config"
	"github.com/investbuddy/circles-api/internal/data/mongo"
	"github.com/investbuddy/circles-api/internal/data/postgres"
	"github.com/investbuddy/circles-api/internal/logger"
	"github.com/investbuddy/circles-api/internal/notify"
	"github.com/investbuddy/circles-api/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(&cfg.Logging)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize the notification sinks: the local scene listener over
	// WebSocket, plus the optional Kafka mirror when brokers are configured
	sinks := []notify.Publisher{notify.NewSocketPublisher(log, &cfg.Notifier)}
	if cfg.Kafka.Enabled() {
		producer, err := notify.NewGoalEventsProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize Kafka goal-events producer", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, producer)
	}

	events, err := notify.NewAsyncPublisher(log, cfg.WorkerPool.Size, sinks...)
	if err != nil {
		log.Error("Failed to initialize notification publisher", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(log, postgresDB)
	circleRepo := postgres.NewCircleRepository(log, postgresDB)
	goalRepo := postgres.NewGoalRepository(log, postgresDB)
	contributionRepo := postgres.NewContributionRepository(log, postgresDB)
	auditRepo := mongo.NewTransactionRepository(log, mongoDB.Database())

	// Initialize services
	profileService := service.NewProfileService(profileRepo, auditRepo, cfg.Auth.DevFallbackUser, log)
	goalService := service.NewGoalService(postgresDB, circleRepo, goalRepo, contributionRepo, log)
	contributionService := service.NewContributionService(postgresDB, profileRepo, goalRepo, contributionRepo, auditRepo, events, log)

	// Initialize REST server
	server := api.NewServer(log, cfg, profileService, goalService, contributionService, events)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Drain in-flight notifications before closing the stores they may touch
	if err = events.Close(); err != nil {
		log.Error("Error closing notification publisher", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
