package service

import (
	"context"
	"fmt"
	"log"

	"keypad-studio/models"
	"keypad-studio/repository"
)

// SyncService synchronizes icon artwork from Google Drive into PostgreSQL.
// Implements SyncServiceInterface.
type SyncService struct {
	driveService DriveServiceInterface
	repository   repository.IconAssetRepositoryInterface
}

// NewSyncService creates a new SyncService.
func NewSyncService(driveService DriveServiceInterface, repo repository.IconAssetRepositoryInterface) *SyncService {
	return &SyncService{
		driveService: driveService,
		repository:   repo,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncIconAssets pulls icon artwork from the Drive folder into the asset
// table. Files already known by drive_file_id are skipped; new rows start in
// "pending" status until reviewed.
func (s *SyncService) SyncIconAssets(ctx context.Context, folderID string) ([]models.IconAsset, error) {
	if s.driveService == nil {
		return nil, fmt.Errorf("icon asset sync is disabled: no Drive credentials configured")
	}
	log.Printf("🔄 Starting icon asset sync for folder: %s", folderID)

	driveAssets, err := s.driveService.ListIconAssets(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list icon assets from Drive: %w", err)
	}
	log.Printf("📦 Processing %d icon assets from Google Drive", len(driveAssets))

	inserted, skipped := 0, 0
	for _, asset := range driveAssets {
		exists, err := s.repository.ExistsByDriveFileID(ctx, asset.DriveFileID)
		if err != nil {
			log.Printf("❌ Error checking existence for drive_file_id %s: %v", asset.DriveFileID, err)
			continue
		}
		if exists {
			skipped++
			continue
		}

		dbAsset := &models.IconAssetDB{
			IconID:      asset.IconID,
			Name:        asset.Name,
			SizeMM:      asset.SizeMM,
			Finish:      asset.Finish,
			DriveFileID: asset.DriveFileID,
			ImageURL:    asset.ImageURL,
		}
		if err := s.repository.Insert(ctx, dbAsset, "pending"); err != nil {
			log.Printf("❌ Error inserting drive_file_id %s: %v", asset.DriveFileID, err)
			continue
		}
		inserted++
	}

	log.Printf("🎉 Icon asset sync completed: %d inserted, %d skipped, %d total", inserted, skipped, len(driveAssets))
	return driveAssets, nil
}
