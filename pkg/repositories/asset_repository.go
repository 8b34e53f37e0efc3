package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stackwise-ai/ledger-engine/pkg/apperrors"
	"github.com/stackwise-ai/ledger-engine/pkg/database"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
)

// AssetRepository provides data access for AI-assisted work assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*models.Asset, error)
	List(ctx context.Context, ownerID uuid.UUID, filters models.AssetFilters) ([]*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	Deactivate(ctx context.Context, ownerID, assetID uuid.UUID) error
}

type assetRepository struct {
	db *database.DB
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *database.DB) AssetRepository {
	return &assetRepository{db: db}
}

var _ AssetRepository = (*assetRepository)(nil)

const assetColumns = `id, owner_id, project_name, technology_used, category,
	completion_status, ai_assistance_level, value_score, notes, is_active,
	created_at, updated_at`

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	now := time.Now()

	query := `
		INSERT INTO ledger_assets (
			owner_id, project_name, technology_used, category,
			completion_status, ai_assistance_level, value_score, notes,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		asset.OwnerID,
		asset.ProjectName,
		asset.TechnologyUsed,
		asset.Category,
		asset.CompletionStatus,
		asset.AIAssistanceLevel,
		asset.ValueScore,
		asset.Notes,
		true,
		now,
		now,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	asset.IsActive = true
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*models.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM ledger_assets WHERE owner_id = $1 AND id = $2`

	asset, err := scanAsset(r.db.QueryRow(ctx, query, ownerID, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

func (r *assetRepository) List(ctx context.Context, ownerID uuid.UUID, filters models.AssetFilters) ([]*models.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM ledger_assets WHERE owner_id = $1`
	args := []any{ownerID}

	if filters.ActiveOnly {
		query += ` AND is_active`
	}
	if filters.CompletionStatus != "" {
		args = append(args, filters.CompletionStatus)
		query += fmt.Sprintf(` AND completion_status = $%d`, len(args))
	}
	if filters.Technology != "" {
		args = append(args, filters.Technology)
		query += fmt.Sprintf(` AND technology_used = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	query := `
		UPDATE ledger_assets
		SET completion_status = $3, ai_assistance_level = $4, value_score = $5,
		    notes = $6, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		asset.OwnerID,
		asset.ID,
		asset.CompletionStatus,
		asset.AIAssistanceLevel,
		asset.ValueScore,
		asset.Notes,
	).Scan(&asset.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return nil
}

func (r *assetRepository) Deactivate(ctx context.Context, ownerID, assetID uuid.UUID) error {
	query := `UPDATE ledger_assets SET is_active = FALSE, updated_at = NOW() WHERE owner_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, ownerID, assetID)
	if err != nil {
		return fmt.Errorf("failed to deactivate asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanAsset(row pgx.Row) (*models.Asset, error) {
	var asset models.Asset
	err := row.Scan(
		&asset.ID,
		&asset.OwnerID,
		&asset.ProjectName,
		&asset.TechnologyUsed,
		&asset.Category,
		&asset.CompletionStatus,
		&asset.AIAssistanceLevel,
		&asset.ValueScore,
		&asset.Notes,
		&asset.IsActive,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
