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

// NetAssetRepository provides data access for demonstrated mastery records.
// The partial unique index on (owner_id, technology_name) guarantees at
// most one active record per technology; Create surfaces a violation as
// ErrConflict.
type NetAssetRepository interface {
	Create(ctx context.Context, netAsset *models.NetAsset) error
	GetByID(ctx context.Context, ownerID, netAssetID uuid.UUID) (*models.NetAsset, error)
	GetActiveByTechnology(ctx context.Context, ownerID uuid.UUID, technology string) (*models.NetAsset, error)
	ListActive(ctx context.Context, ownerID uuid.UUID) ([]*models.NetAsset, error)
	Update(ctx context.Context, netAsset *models.NetAsset) error
	Deactivate(ctx context.Context, ownerID, netAssetID uuid.UUID) error
}

type netAssetRepository struct {
	db *database.DB
}

// NewNetAssetRepository creates a new NetAssetRepository.
func NewNetAssetRepository(db *database.DB) NetAssetRepository {
	return &netAssetRepository{db: db}
}

var _ NetAssetRepository = (*netAssetRepository)(nil)

const netAssetColumns = `id, owner_id, technology_name, category,
	proficiency_level, proficiency_score, confidence_level, mastery_score,
	is_active, last_assessed_at, created_at, updated_at`

func (r *netAssetRepository) Create(ctx context.Context, netAsset *models.NetAsset) error {
	now := time.Now()

	query := `
		INSERT INTO ledger_net_assets (
			owner_id, technology_name, category, proficiency_level,
			proficiency_score, confidence_level, mastery_score, is_active,
			last_assessed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		netAsset.OwnerID,
		netAsset.TechnologyName,
		netAsset.Category,
		netAsset.ProficiencyLevel,
		netAsset.ProficiencyScore,
		netAsset.ConfidenceLevel,
		netAsset.MasteryScore,
		true,
		netAsset.LastAssessedAt,
		now,
		now,
	).Scan(&netAsset.ID, &netAsset.CreatedAt, &netAsset.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create net asset: %w", err)
	}

	netAsset.IsActive = true
	return nil
}

func (r *netAssetRepository) GetByID(ctx context.Context, ownerID, netAssetID uuid.UUID) (*models.NetAsset, error) {
	query := `SELECT ` + netAssetColumns + ` FROM ledger_net_assets WHERE owner_id = $1 AND id = $2`

	netAsset, err := scanNetAsset(r.db.QueryRow(ctx, query, ownerID, netAssetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get net asset: %w", err)
	}
	return netAsset, nil
}

func (r *netAssetRepository) GetActiveByTechnology(ctx context.Context, ownerID uuid.UUID, technology string) (*models.NetAsset, error) {
	query := `SELECT ` + netAssetColumns + ` FROM ledger_net_assets
		WHERE owner_id = $1 AND technology_name = $2 AND is_active`

	netAsset, err := scanNetAsset(r.db.QueryRow(ctx, query, ownerID, technology))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get net asset by technology: %w", err)
	}
	return netAsset, nil
}

func (r *netAssetRepository) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*models.NetAsset, error) {
	query := `SELECT ` + netAssetColumns + ` FROM ledger_net_assets
		WHERE owner_id = $1 AND is_active
		ORDER BY technology_name, id`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list net assets: %w", err)
	}
	defer rows.Close()

	var netAssets []*models.NetAsset
	for rows.Next() {
		netAsset, err := scanNetAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan net asset: %w", err)
		}
		netAssets = append(netAssets, netAsset)
	}
	return netAssets, rows.Err()
}

func (r *netAssetRepository) Update(ctx context.Context, netAsset *models.NetAsset) error {
	query := `
		UPDATE ledger_net_assets
		SET category = $3, proficiency_level = $4, proficiency_score = $5,
		    confidence_level = $6, mastery_score = $7, last_assessed_at = $8,
		    updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		netAsset.OwnerID,
		netAsset.ID,
		netAsset.Category,
		netAsset.ProficiencyLevel,
		netAsset.ProficiencyScore,
		netAsset.ConfidenceLevel,
		netAsset.MasteryScore,
		netAsset.LastAssessedAt,
	).Scan(&netAsset.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update net asset: %w", err)
	}
	return nil
}

func (r *netAssetRepository) Deactivate(ctx context.Context, ownerID, netAssetID uuid.UUID) error {
	query := `UPDATE ledger_net_assets SET is_active = FALSE, updated_at = NOW() WHERE owner_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, ownerID, netAssetID)
	if err != nil {
		return fmt.Errorf("failed to deactivate net asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanNetAsset(row pgx.Row) (*models.NetAsset, error) {
	var netAsset models.NetAsset
	err := row.Scan(
		&netAsset.ID,
		&netAsset.OwnerID,
		&netAsset.TechnologyName,
		&netAsset.Category,
		&netAsset.ProficiencyLevel,
		&netAsset.ProficiencyScore,
		&netAsset.ConfidenceLevel,
		&netAsset.MasteryScore,
		&netAsset.IsActive,
		&netAsset.LastAssessedAt,
		&netAsset.CreatedAt,
		&netAsset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &netAsset, nil
}
