package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentalshop-backend/internal/api/http"
	"rentalshop-backend/internal/config"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository/postgres"
	"rentalshop-backend/internal/security"
	"rentalshop-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Shop Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.Auth.TokenSecret,
		time.Duration(cfg.Auth.SessionExpiryHours)*time.Hour,
	)

	// Shared coordination primitives
	locks := service.NewEntityLocks()
	notifier := service.NewLedgerNotifier()

	// Initialize message delivery channel
	channel := service.NewSendGridChannel(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromName,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.OutboxEmail,
	)

	// Initialize Services
	catalogSvc := service.NewCatalogService(
		store.CustomerRepository,
		store.ItemRepository,
		store.RentalRepository,
		store.SettingsRepository,
		locks,
		notifier,
	)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ItemRepository,
		store.CustomerRepository,
		locks,
		notifier,
	)
	alertSvc := service.NewAlertService(
		store.ItemRepository,
		store.RentalRepository,
		store.CustomerRepository,
		service.AlertThresholds{
			PendingBalance: *cfg.Billing.PendingBalanceThreshold,
			LowStock:       *cfg.Billing.LowStockThreshold,
		},
	)
	reportSvc := service.NewReportService(
		store.RentalRepository,
		store.ItemRepository,
		store.CustomerRepository,
	)
	messageSvc := service.NewMessageService(
		store.RentalRepository,
		store.CustomerRepository,
		store.ItemRepository,
		store.SettingsRepository,
		channel,
	)
	exportSvc := service.NewExportService(
		store.RentalRepository,
		store.CustomerRepository,
		store.ItemRepository,
		store.SettingsRepository,
		cfg.Export.Dir,
	)

	// Accrual runs at startup and again whenever the ledger changes.
	// The notifier callback only signals; the pass itself runs on its
	// own goroutine so it never blocks a request holding entity locks.
	accrualEngine := service.NewAccrualEngine(store.RentalRepository, locks, notifier)
	accrualKick := make(chan struct{}, 1)
	notifier.Subscribe(func() {
		select {
		case accrualKick <- struct{}{}:
		default:
		}
	})
	go func() {
		for range accrualKick {
			if _, err := accrualEngine.Run(context.Background(), time.Now()); err != nil {
				logger.Error("Accrual pass failed", "error", err)
			}
		}
	}()
	if _, err := accrualEngine.Run(context.Background(), time.Now()); err != nil {
		logger.Error("Startup accrual pass failed", "error", err)
	}

	// Initialize HTTP API
	handler := httpapi.NewHandler(
		catalogSvc,
		rentalSvc,
		alertSvc,
		reportSvc,
		messageSvc,
		exportSvc,
		tokenManager,
		cfg,
	)
	router := httpapi.NewRouter(handler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
