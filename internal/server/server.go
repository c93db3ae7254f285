package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/robfig/cron/v3"

	"healthmart/internal/config"
	"healthmart/internal/database"
	"healthmart/internal/handlers"
	"healthmart/internal/models"
	"healthmart/internal/repositories"
	"healthmart/internal/routes"
	"healthmart/internal/services"
)

func NewServer() *http.Server {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	pool, err := database.Connect(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(context.Background(), pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Dependency injection
	catalogRepo := repositories.NewCatalogRepository(pool)
	runRepo := repositories.NewMigrationRunRepository(pool)
	datasetRepo := repositories.NewDatasetRepository(pool)

	migrationService := services.NewMigrationService(catalogRepo, runRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	datasetService := services.NewDatasetService(datasetRepo, "public")

	var manifest []models.DatasetSpec
	if cfg.DataDir != "" {
		manifest = services.DefaultManifest(cfg.DataDir)
	}

	migrationHandler := handlers.NewMigrationHandler(migrationService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	datasetHandler := handlers.NewDatasetHandler(datasetService, manifest)

	router := gin.Default()
	router.Use(cors.Default())
	routes.RegisterRoutes(router, migrationHandler, catalogHandler, datasetHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if cfg.ScheduleEnabled() {
		scheduler := startScheduler(cfg, datasetService, manifest)
		server.RegisterOnShutdown(func() { scheduler.Stop() })
	}
	server.RegisterOnShutdown(pool.Close)

	return server
}

// startScheduler runs the dataset refresh on the configured cron spec, the
// daily warehouse feed.
func startScheduler(cfg *config.Config, datasetService *services.DatasetService, manifest []models.DatasetSpec) *cron.Cron {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cfg.LoadSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		report := datasetService.Refresh(ctx, manifest)
		log.Printf("Scheduled refresh finished: %d loaded, %d failed", len(report.Loaded), len(report.Failed))
	})
	if err != nil {
		log.Fatalf("invalid LOAD_SCHEDULE %q: %v", cfg.LoadSchedule, err)
	}

	scheduler.Start()
	log.Printf("Dataset refresh scheduled: %s", cfg.LoadSchedule)
	return scheduler
}
