package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boostdesk-reconciliation/internal/api_gateway"
	"github.com/boostdesk-reconciliation/internal/api_gateway/service"
	"github.com/boostdesk-reconciliation/internal/config"
	"github.com/boostdesk-reconciliation/internal/data/mongo"
	"github.com/boostdesk-reconciliation/internal/data/postgres"
	"github.com/boostdesk-reconciliation/internal/logger"
	"github.com/boostdesk-reconciliation/internal/platform/messaging/producers"
	"github.com/boostdesk-reconciliation/internal/platform/persistence"
	"github.com/boostdesk-reconciliation/internal/reconcile"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("reconciliation_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

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

	// Initialize Kafka producer for batch committed events
	batchEventProducer, err := producers.NewBatchEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize batch event producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	partnerRepo := postgres.NewPartnerRepository(log, postgresDB)
	orderRepo := mongo.NewOrderRepository(log, mongoDB.Database())
	paymentRepo := mongo.NewPaymentRepository(log, mongoDB.Database())

	// Initialize the reconciliation core and services
	committer := reconcile.NewCommitter(log, orderRepo, paymentRepo)
	partnerService := service.NewPartnerService(partnerRepo)
	paymentService := service.NewPaymentService(paymentRepo)
	reconciliationService := service.NewReconciliationService(log, partnerRepo, orderRepo, committer, batchEventProducer)

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, partnerService, paymentService, reconciliationService)
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

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = batchEventProducer.Close(); err != nil {
		log.Error("Error closing batch event producer", "error", err)
	}

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
