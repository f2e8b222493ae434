package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"arbor/internal/auth"
	"arbor/internal/config"
	"arbor/internal/connectors"
	"arbor/internal/handler"
	"arbor/internal/middleware"
	"arbor/internal/repository/postgres"
	servicePicker "arbor/internal/service/picker"
	serviceSnapshot "arbor/internal/service/snapshot"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verifier; without a JWKS URL the server only runs in dev
	var verifier auth.TokenVerifier
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}
		verifier = v
		defer verifier.Close()
	} else if cfg.Environment != "dev" {
		log.Fatalf("JWKS_URL is required outside the dev environment")
	} else {
		logger.Warn("DEV MODE: no JWKS_URL configured, requests are unauthenticated")
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	snapshotRepo := postgres.NewSnapshotRepository(repoConfig)
	confirmationRepo := postgres.NewConfirmationRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Connector type registry from embedded specs
	registry, err := connectors.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load connector registry: %v", err)
	}
	logger.Info("connector registry loaded", "types", len(registry.List()))

	// Create services
	snapshotService := serviceSnapshot.NewService(snapshotRepo, registry, logger)
	pickerService := servicePicker.NewService(
		snapshotRepo,
		confirmationRepo,
		txManager,
		cfg.SessionTTL,
		cfg.SweepInterval,
		logger,
	)
	defer pickerService.Close()

	// Create handlers
	snapshotHandler := handler.NewSnapshotHandler(snapshotService, logger)
	sessionHandler := handler.NewSessionHandler(pickerService, logger)
	connectorsHandler := handler.NewConnectorsHandler(registry, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", snapshotHandler.HealthCheck)

	// Connector type registry
	mux.HandleFunc("GET /api/connector-types", connectorsHandler.ListTypes)
	mux.HandleFunc("GET /api/connector-types/{type}", connectorsHandler.GetType)

	// Snapshot routes
	mux.HandleFunc("POST /api/connectors/{id}/snapshots", snapshotHandler.Ingest)
	mux.HandleFunc("GET /api/connectors/{id}/snapshots/latest", snapshotHandler.GetLatestSnapshot)
	mux.HandleFunc("GET /api/snapshots/{id}", snapshotHandler.GetSnapshot)

	// Picker session routes
	mux.HandleFunc("POST /api/sessions", sessionHandler.CreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", sessionHandler.GetSession)
	mux.HandleFunc("GET /api/sessions/{id}/tree", sessionHandler.GetTree)
	mux.HandleFunc("POST /api/sessions/{id}/toggle", sessionHandler.Toggle)
	mux.HandleFunc("POST /api/sessions/{id}/clear", sessionHandler.Clear)
	mux.HandleFunc("POST /api/sessions/{id}/confirm", sessionHandler.Confirm)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessionHandler.CloseSession)

	// Build middleware chain; applied in reverse order (they wrap each other)
	var httpHandler http.Handler = mux

	// Recovery sits inside Auth so a panic log carries the authenticated user
	httpHandler = middleware.Recovery(logger)(httpHandler)
	if verifier != nil {
		httpHandler = middleware.Auth(verifier)(httpHandler)
	}

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM so in-flight requests finish
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
