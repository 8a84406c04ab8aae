package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"keypad-studio/app/controller"
	"keypad-studio/app/router"
	"keypad-studio/configurator"
	"keypad-studio/db"
	"keypad-studio/render"
	"keypad-studio/repository"
	"keypad-studio/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	catalogURL := os.Getenv("ICON_CATALOG_URL")
	if catalogURL == "" {
		return fmt.Errorf("ICON_CATALOG_URL environment variable is not set")
	}
	orderURL := os.Getenv("ORDER_SERVICE_URL")
	if orderURL == "" {
		return fmt.Errorf("ORDER_SERVICE_URL environment variable is not set")
	}

	if err := service.EnsureCacheDir(); err != nil {
		return err
	}

	// Collaborator clients
	catalogClient := service.NewCatalogClient(catalogURL)
	orderClient := service.NewOrderClient(orderURL)

	// Drive sync for icon artwork. Optional: without credentials the admin
	// sync endpoints are disabled but the configurator still works.
	iconAssetRepo := repository.NewIconAssetRepository()
	var syncService service.SyncServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		syncService = service.NewSyncService(driveService, iconAssetRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, icon asset sync disabled")
		syncService = service.NewSyncService(nil, iconAssetRepo)
	}

	// Core plumbing
	sessions := configurator.NewManager()
	alpha := render.NewAlphaAnalyzer(nil)
	renders := service.NewRenderStore()
	designRepo := repository.NewSavedDesignRepository()
	exportService := service.NewExportService(
		orderClient, catalogClient, service.NewPDFService(), renders, alpha, baseURL)

	// Reap configurator sessions abandoned mid-edit.
	go func() {
		for range time.Tick(10 * time.Minute) {
			if dropped := sessions.Sweep(2 * time.Hour); dropped > 0 {
				log.Printf("🧹 Reaped %d idle configurator sessions", dropped)
			}
		}
	}()

	// Create controllers
	controllers := &router.Controllers{
		Configurator: controller.NewConfiguratorController(sessions, catalogClient, orderClient, designRepo, alpha),
		SavedDesign:  controller.NewSavedDesignController(designRepo),
		Export:       controller.NewExportController(exportService, renders),
		IconAsset:    controller.NewIconAssetController(syncService, iconAssetRepo),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
