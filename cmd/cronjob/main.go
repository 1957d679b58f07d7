package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentalshop-backend/internal/config"
	"rentalshop-backend/internal/jobs"
	"rentalshop-backend/internal/logger"
	"rentalshop-backend/internal/repository/postgres"
	"rentalshop-backend/internal/scheduler"
	"rentalshop-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'accrual-pass', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Shop Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Repositories
	store := postgres.NewStore(db)

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
	rentalService := service.NewRentalService(
		store.RentalRepository,
		store.ItemRepository,
		store.CustomerRepository,
		locks,
		notifier,
	)
	alertService := service.NewAlertService(
		store.ItemRepository,
		store.RentalRepository,
		store.CustomerRepository,
		service.AlertThresholds{
			PendingBalance: *cfg.Billing.PendingBalanceThreshold,
			LowStock:       *cfg.Billing.LowStockThreshold,
		},
	)
	messageService := service.NewMessageService(
		store.RentalRepository,
		store.CustomerRepository,
		store.ItemRepository,
		store.SettingsRepository,
		channel,
	)
	accrualEngine := service.NewAccrualEngine(store.RentalRepository, locks, notifier)

	jobServices := &jobs.Services{
		Accrual: accrualEngine,
		Rental:  rentalService,
		Alert:   alertService,
		Message: messageService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "accrual-pass":
		jobRunner.RunAccrualPass()
	case "send-overdue-reminders":
		jobRunner.SendOverdueReminders()
	case "send-balance-reminders":
		jobRunner.SendBalanceReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - accrual-pass\n")
		fmt.Printf("  - send-overdue-reminders\n")
		fmt.Printf("  - send-balance-reminders\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
