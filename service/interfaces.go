package service

import (
	"context"

	"keypad-studio/models"
)

// CatalogServiceInterface defines the contract for the icon catalog
// collaborator client.
type CatalogServiceInterface interface {
	ListProducts(ctx context.Context) ([]models.CatalogProduct, error)
	IconCatalog(ctx context.Context) ([]models.IconCatalogItem, error)
	SearchIcons(ctx context.Context, query string, slotSizeMM float64) ([]models.IconCatalogItem, error)
}

// OrderServiceInterface defines the contract for the order/cart
// collaborator client.
type OrderServiceInterface interface {
	GetConfiguredLines(ctx context.Context, orderCode string) ([]models.ConfiguredLine, error)
}

// DocumentRendererInterface defines the contract for the headless
// document-rendering collaborator.
type DocumentRendererInterface interface {
	RenderPDF(ctx context.Context, renderURL string) ([]byte, error)
}

// ExportServiceInterface defines the contract for the export pipeline.
type ExportServiceInterface interface {
	ExportBOM(ctx context.Context, orderCode, modelCode string, rawConfig []byte) ([]byte, error)
}

// DriveServiceInterface defines the contract for listing icon artwork from
// the Drive folder.
type DriveServiceInterface interface {
	ListIconAssets(folderID string) ([]models.IconAsset, error)
}

// SyncServiceInterface defines the contract for the icon asset sync.
type SyncServiceInterface interface {
	SyncIconAssets(ctx context.Context, folderID string) ([]models.IconAsset, error)
}
