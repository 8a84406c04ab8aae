package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"keypad-studio/db"
	"keypad-studio/models"
)

// SavedDesignRepository handles database operations for saved keypad designs
type SavedDesignRepository struct{}

// NewSavedDesignRepository creates a new SavedDesignRepository
func NewSavedDesignRepository() *SavedDesignRepository {
	return &SavedDesignRepository{}
}

// Ensure SavedDesignRepository implements SavedDesignRepositoryInterface
var _ SavedDesignRepositoryInterface = (*SavedDesignRepository)(nil)

// Insert stores a new saved design and returns its id.
func (r *SavedDesignRepository) Insert(ctx context.Context, design *models.SavedDesign) (int, error) {
	query := `
		INSERT INTO saved_designs (name, keypad_model, configuration, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`
	var id int
	err := db.DB.QueryRowContext(ctx, query, design.Name, design.KeypadModel, design.Configuration).Scan(&id)
	if err != nil {
		log.Printf("❌ Error inserting saved design: %v", err)
		return 0, fmt.Errorf("failed to insert saved design: %w", err)
	}
	return id, nil
}

// GetByID retrieves a saved design by id.
func (r *SavedDesignRepository) GetByID(ctx context.Context, id int) (*models.SavedDesign, error) {
	query := `
		SELECT id, name, keypad_model, configuration, created_at::text
		FROM saved_designs
		WHERE id = $1
	`
	var design models.SavedDesign
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&design.ID,
		&design.Name,
		&design.KeypadModel,
		&design.Configuration,
		&design.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved design %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query saved design: %w", err)
	}
	return &design, nil
}

// List returns all saved designs, newest first.
func (r *SavedDesignRepository) List(ctx context.Context) ([]models.SavedDesign, error) {
	query := `
		SELECT id, name, keypad_model, configuration, created_at::text
		FROM saved_designs
		ORDER BY created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved designs: %w", err)
	}
	defer rows.Close()

	var designs []models.SavedDesign
	for rows.Next() {
		var design models.SavedDesign
		if err := rows.Scan(&design.ID, &design.Name, &design.KeypadModel, &design.Configuration, &design.CreatedAt); err != nil {
			log.Printf("❌ Error scanning saved design: %v", err)
			continue
		}
		designs = append(designs, design)
	}
	return designs, rows.Err()
}

// Update rewrites name, model and configuration of an existing design.
func (r *SavedDesignRepository) Update(ctx context.Context, design *models.SavedDesign) error {
	query := `
		UPDATE saved_designs
		SET name = $1, keypad_model = $2, configuration = $3
		WHERE id = $4
	`
	result, err := db.DB.ExecContext(ctx, query, design.Name, design.KeypadModel, design.Configuration, design.ID)
	if err != nil {
		return fmt.Errorf("failed to update saved design: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("saved design %d not found", design.ID)
	}
	return nil
}

// Delete removes a saved design.
func (r *SavedDesignRepository) Delete(ctx context.Context, id int) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM saved_designs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved design: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("saved design %d not found", id)
	}
	return nil
}
