package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/parmanandkushwah/MoneyMentor/internal/application/service"
	"github.com/parmanandkushwah/MoneyMentor/internal/config"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/cache"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/db"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/handler"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/logger"
	"github.com/parmanandkushwah/MoneyMentor/internal/infrastructure/middleware"
)

func main() {
	log.Println("Starting MoneyMentor")

	// .env is optional; real settings come from config.yaml / environment
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("MONEYMENTOR_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.Log.Level))
	logger.SetDefaultLogger(appLogger)

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.Database.Path, 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	badgerOpts := badger.DefaultOptions(cfg.Database.Path)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Printf("Error closing BadgerDB: %v", err)
		}
	}()

	// Initialize repositories
	store := db.NewBadgerStore(badgerDB)
	snapshotCache := cache.NewSnapshotCache()

	profileRepo := db.NewStoreProfileRepository(store, appLogger)
	ledgerRepo := db.NewStoreLedgerRepository(store, appLogger)
	snapshotRepo := db.NewStoreSnapshotRepository(store, snapshotCache, appLogger)

	// Initialize services
	sessionService := service.NewSessionService(profileRepo, ledgerRepo, snapshotRepo, appLogger)
	insightsService := service.NewInsightsService(appLogger)

	// Restore the session persisted on this device, if any
	if _, err := sessionService.Initialize(context.Background()); err != nil {
		appLogger.Warn("Session restore failed, starting logged out", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService, appLogger)
	txHandler := handler.NewTransactionHandler(sessionService, appLogger)
	insightsHandler := handler.NewInsightsHandler(sessionService, insightsService, appLogger)
	exportHandler := handler.NewExportHandler(sessionService, appLogger)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(appLogger))

	exportHandler.RegisterRoutes(router)
	sessionHandler.RegisterRoutes(router)
	txHandler.RegisterRoutes(router)
	insightsHandler.RegisterRoutes(router)

	// Start server
	addr := cfg.ListenAddr()
	log.Printf("Server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
