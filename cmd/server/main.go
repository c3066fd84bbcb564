package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"google.golang.org/api/option"

	httpapi "habitat-portal-backend/internal/api/http"
	"habitat-portal-backend/internal/config"
	"habitat-portal-backend/internal/feed"
	"habitat-portal-backend/internal/logger"
	fsrepo "habitat-portal-backend/internal/repository/firestore"
	"habitat-portal-backend/internal/security"
	"habitat-portal-backend/internal/service"
	"habitat-portal-backend/internal/storage"
)

const nameCacheTTL = 5 * time.Minute

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local development convenience; ignored when no .env file exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Habitat Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firebase configuration", "project_id", cfg.Firebase.ProjectID, "bucket", cfg.Firebase.StorageBucket)

	ctx := context.Background()

	// Initialize Firebase app and clients
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

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to initialize auth client", "error", err)
		log.Fatalf("Failed to initialize auth client: %v", err)
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

	// Initialize Object Storage
	var files storage.ObjectStorage
	var localFiles *storage.LocalStorage
	switch cfg.Storage.Type {
	case "local":
		logger.Info("Using local storage", "upload_dir", cfg.Storage.UploadDir)
		localFiles, err = storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		files = localFiles
	default:
		stClient, err := app.Storage(ctx)
		if err != nil {
			logger.Error("Failed to initialize storage client", "error", err)
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		bucket, err := stClient.Bucket(cfg.Firebase.StorageBucket)
		if err != nil {
			logger.Error("Failed to open storage bucket", "error", err, "bucket", cfg.Firebase.StorageBucket)
			log.Fatalf("Failed to open storage bucket: %v", err)
		}
		files = storage.NewGCSStorage(bucket)
	}

	// Initialize Services
	authProvider := service.NewFirebaseAuthProvider(authClient)
	identitySvc := service.NewIdentityService(store.UserRepository, authProvider)
	reportSvc := service.NewReportService(store.ReportRepository, store.UnitRepository)
	userSvc := service.NewUserService(store.UserRepository, authProvider)
	buildingSvc := service.NewBuildingService(store.BuildingRepository)
	unitSvc := service.NewUnitService(store.UnitRepository, files)
	consumptionSvc := service.NewConsumptionService(store.ConsumptionRepository)
	documentSvc := service.NewDocumentService(store.DocumentRepository, store.BuildingRepository, files)

	// Initialize the live feed hub
	names := feed.NewNameCache(store.UserRepository, nameCacheTTL)
	hub := feed.NewHub(store.ReportRepository, names)

	// Initialize stream tokens
	streamTokens := security.NewStreamTokenManager(
		cfg.Stream.TokenSecret,
		time.Duration(cfg.Stream.TokenExpiryMinutes)*time.Minute,
	)

	// Assemble the API
	api := httpapi.NewAPI(
		httpapi.NewFirebaseTokenVerifier(authClient),
		httpapi.Services{
			Identity:    identitySvc,
			Reports:     reportSvc,
			Users:       userSvc,
			Buildings:   buildingSvc,
			Units:       unitSvc,
			Consumption: consumptionSvc,
			Documents:   documentSvc,
		},
		hub,
		streamTokens,
	)
	router := api.Router()

	// Dev file handler backing local storage URLs
	if localFiles != nil {
		router.PathPrefix("/files/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f, err := localFiles.Open(r.URL.Path[len("/files/"):])
			if err != nil {
				http.NotFound(w, r)
				return
			}
			defer f.Close()
			io.Copy(w, f)
		}).Methods(http.MethodGet)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
