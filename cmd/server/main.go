package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "velotrack-backoffice/internal/api/http"
	"velotrack-backoffice/internal/config"
	"velotrack-backoffice/internal/logger"
	"velotrack-backoffice/internal/repository/postgres"
	"velotrack-backoffice/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Velotrack Back-Office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.WorkshopEmail,
	)

	maintSvc := service.NewMaintenanceService(store.MaintenanceRepository, store.BikeRepository)
	usageSvc := service.NewPartUsageService(store.PartUsageRepository, store.MaintenanceRepository)
	scheduleSvc := service.NewScheduleService(store.WeeklyScheduleRepository, store.MaintenanceRepository, store.BikeRepository)
	bikeSvc := service.NewBikeService(store.BikeRepository, store.MaintenanceRepository)
	partSvc := service.NewPartService(store.PartRepository)
	purchaseSvc := service.NewPurchaseService(store.PurchaseRequestRepository, store.PartRepository, emailSvc)
	userSvc := service.NewUserService(store.UserRepository)

	router := api.NewRouter(
		api.NewMaintenanceHandler(maintSvc, usageSvc, scheduleSvc),
		api.NewBikeHandler(bikeSvc),
		api.NewPartHandler(partSvc),
		api.NewPurchaseHandler(purchaseSvc),
		api.NewUserHandler(userSvc),
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
