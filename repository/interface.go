package repository

import (
	"context"

	"keypad-studio/models"
)

// SavedDesignRepositoryInterface defines the contract for saved design
// storage. Configuration strings handed to Insert/Update must already be
// canonical; controllers enforce that through the configuration contract.
type SavedDesignRepositoryInterface interface {
	Insert(ctx context.Context, design *models.SavedDesign) (int, error)
	GetByID(ctx context.Context, id int) (*models.SavedDesign, error)
	List(ctx context.Context) ([]models.SavedDesign, error)
	Update(ctx context.Context, design *models.SavedDesign) error
	Delete(ctx context.Context, id int) error
}

// IconAssetRepositoryInterface defines the contract for synced icon artwork
// rows.
type IconAssetRepositoryInterface interface {
	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
	Insert(ctx context.Context, asset *models.IconAssetDB, status string) error
	GetByID(ctx context.Context, id int) (*models.IconAssetDB, error)
	GetPending(ctx context.Context) ([]models.IconAssetDB, error)
}
