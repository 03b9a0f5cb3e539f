package main

import (
	"alcyxob/physio-app/internal/api"
	"alcyxob/physio-app/internal/config"
	"alcyxob/physio-app/internal/generator"
	"alcyxob/physio-app/internal/observability"
	"alcyxob/physio-app/internal/repository/mongo"
	"alcyxob/physio-app/internal/service"
	"alcyxob/physio-app/internal/storage"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Could not load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)
	if cfg.JWT.Secret == "" {
		slog.Error("jwt.secret is required to verify bearer tokens")
		os.Exit(1)
	}
	slog.Info("Starting Physio App Server...", "generator_mode", cfg.Generator.Mode)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		slog.Error("Could not connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		slog.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			slog.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	slog.Info("Database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() { // Run index creation in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		slog.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			slog.Error("Failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("No S3 bucket configured, exercise images are served without URLs")
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	// --- Initialize Repositories ---
	bodyPartRepo := mongo.NewMongoBodyPartRepository(appDB)
	muscleTestRepo := mongo.NewMongoMuscleTestRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	errorLogRepo := mongo.NewMongoGenerationErrorLogRepository(appDB)

	// --- Initialize Generators ---
	primary, fallback, err := generator.ForMode(cfg.Generator.Mode, cfg.AI)
	if err != nil {
		slog.Error("Failed to initialize plan generator", "error", err)
		os.Exit(1)
	}

	// --- Initialize Services ---
	sessionService := service.NewSessionService(service.SessionServiceOptions{
		Validator:         service.NewDomainValidator(bodyPartRepo, muscleTestRepo),
		Gateway:           service.NewDomainDataGateway(muscleTestRepo, exerciseRepo),
		Sessions:          sessionRepo,
		ErrorLog:          service.NewGenerationErrorLogger(errorLogRepo, metrics),
		Metrics:           metrics,
		Generator:         primary,
		Fallback:          fallback,
		RequireDisclaimer: cfg.Session.RequireDisclaimer,
	})
	catalogService := service.NewCatalogService(bodyPartRepo, muscleTestRepo, exerciseRepo, fileStorage, cfg.S3.PresignExpiry)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.JWT.Secret, sessionService, catalogService, registry)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// in-flight requests may be waiting on the AI call
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.AI.Timeout+5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting.")
}

func setupLogger(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
