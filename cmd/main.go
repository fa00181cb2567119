package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/eventlink/marketplace/internal/db"
	"github.com/eventlink/marketplace/internal/handlers"
	"github.com/eventlink/marketplace/internal/middleware"
	"github.com/eventlink/marketplace/internal/repository"
	"github.com/eventlink/marketplace/internal/router"
	"github.com/eventlink/marketplace/internal/router/config"
	"github.com/eventlink/marketplace/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	profileRepo := repository.NewPostgresProfileRepository(dbPool)
	categoryRepo := repository.NewPostgresCategoryRepository(dbPool)
	serviceRepo := repository.NewPostgresServiceRepository(dbPool)
	requestRepo := repository.NewPostgresRequestRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	conversationRepo := repository.NewPostgresConversationRepository(dbPool)

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := services.NewAuthService(profileRepo, cfg.JWTSecret, tokenTTL)
	catalogService := services.NewCatalogService(serviceRepo, categoryRepo)
	requestService := services.NewRequestService(requestRepo, categoryRepo, serviceRepo)
	bidService := services.NewBidService(bidRepo, requestRepo, serviceRepo, conversationRepo)

	authHandler := handlers.NewAuthHandler(authService, logger, 5*time.Second)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger, 5*time.Second)
	requestHandler := handlers.NewRequestHandler(requestService, logger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second)

	authMW := middleware.NewAuthMiddleware(cfg.JWTSecret, logger)

	routes := router.InitRoutes(authHandler, catalogHandler, requestHandler, bidHandler, authMW)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
