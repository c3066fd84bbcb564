package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"habitat-portal-backend/internal/config"
	"habitat-portal-backend/internal/jobs"
	"habitat-portal-backend/internal/logger"
	fsrepo "habitat-portal-backend/internal/repository/firestore"
	"habitat-portal-backend/internal/scheduler"
	"habitat-portal-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-pending-digest', 'sweep-orphans', 'all-daily')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Habitat Portal Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Firebase app and Firestore client
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.Firebase.ProjectID,
		StorageBucket: cfg.Firebase.StorageBucket,
	}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to initialize Firestore client", "error", err)
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer fsClient.Close()
	logger.Info("Firestore connection established")

	// Initialize Repositories
	store := fsrepo.NewStore(fsClient)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)
	buildingSvc := service.NewBuildingService(store.BuildingRepository)
	reportSvc := service.NewReportService(store.ReportRepository, store.UnitRepository)

	jobServices := &jobs.Services{
		Email:     emailSvc,
		Buildings: buildingSvc,
		Reports:   reportSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, cfg)

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

	cronScheduler.Stop()
}

// runJobOnce executes a single named job for manual or operator use
func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "send-pending-digest":
		jr.SendPendingDigest()
	case "sweep-orphans":
		jr.SweepOrphans()
	case "all-daily":
		jr.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", name)
		os.Exit(1)
	}
}
