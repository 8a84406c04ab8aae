package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"keypad-studio/db"
	"keypad-studio/models"
)

// IconAssetRepository handles database operations for synced icon artwork
type IconAssetRepository struct{}

// NewIconAssetRepository creates a new IconAssetRepository
func NewIconAssetRepository() *IconAssetRepository {
	return &IconAssetRepository{}
}

// Ensure IconAssetRepository implements IconAssetRepositoryInterface
var _ IconAssetRepositoryInterface = (*IconAssetRepository)(nil)

// ExistsByDriveFileID reports whether an asset row already exists for a
// Drive file.
func (r *IconAssetRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM icon_assets WHERE drive_file_id = $1)`
	if err := db.DB.QueryRowContext(ctx, query, driveFileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check icon asset existence: %w", err)
	}
	return exists, nil
}

// Insert stores a newly discovered asset with the given review status.
func (r *IconAssetRepository) Insert(ctx context.Context, asset *models.IconAssetDB, status string) error {
	if status == "" {
		status = "pending"
	}
	query := `
		INSERT INTO icon_assets (icon_id, name, size_mm, finish, drive_file_id, image_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := db.DB.ExecContext(ctx, query,
		asset.IconID, asset.Name, asset.SizeMM, asset.Finish, asset.DriveFileID, asset.ImageURL, status)
	if err != nil {
		return fmt.Errorf("failed to insert icon asset: %w", err)
	}
	return nil
}

// GetByID retrieves one icon asset row.
func (r *IconAssetRepository) GetByID(ctx context.Context, id int) (*models.IconAssetDB, error) {
	query := `
		SELECT id, icon_id, name, size_mm, finish, drive_file_id, image_url, status, created_at::text
		FROM icon_assets
		WHERE id = $1
	`
	var asset models.IconAssetDB
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&asset.ID, &asset.IconID, &asset.Name, &asset.SizeMM, &asset.Finish,
		&asset.DriveFileID, &asset.ImageURL, &asset.Status, &asset.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("icon asset %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query icon asset: %w", err)
	}
	return &asset, nil
}

// GetPending returns assets awaiting review, oldest first.
func (r *IconAssetRepository) GetPending(ctx context.Context) ([]models.IconAssetDB, error) {
	query := `
		SELECT id, icon_id, name, size_mm, finish, drive_file_id, image_url, status, created_at::text
		FROM icon_assets
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending icon assets: %w", err)
	}
	defer rows.Close()

	var assets []models.IconAssetDB
	for rows.Next() {
		var asset models.IconAssetDB
		if err := rows.Scan(
			&asset.ID, &asset.IconID, &asset.Name, &asset.SizeMM, &asset.Finish,
			&asset.DriveFileID, &asset.ImageURL, &asset.Status, &asset.CreatedAt,
		); err != nil {
			log.Printf("❌ Error scanning icon asset: %v", err)
			continue
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
