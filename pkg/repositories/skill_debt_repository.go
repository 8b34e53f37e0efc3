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

// SkillDebtRepository provides data access for knowledge gap records.
// At most one active record exists per (owner_id, technology_name);
// Create surfaces a violation as ErrConflict.
type SkillDebtRepository interface {
	Create(ctx context.Context, debt *models.SkillDebt) error
	GetByID(ctx context.Context, ownerID, debtID uuid.UUID) (*models.SkillDebt, error)
	GetActiveByTechnology(ctx context.Context, ownerID uuid.UUID, technology string) (*models.SkillDebt, error)
	ListActive(ctx context.Context, ownerID uuid.UUID) ([]*models.SkillDebt, error)
	Deactivate(ctx context.Context, ownerID, debtID uuid.UUID) error
}

type skillDebtRepository struct {
	db *database.DB
}

// NewSkillDebtRepository creates a new SkillDebtRepository.
func NewSkillDebtRepository(db *database.DB) SkillDebtRepository {
	return &skillDebtRepository{db: db}
}

var _ SkillDebtRepository = (*skillDebtRepository)(nil)

const skillDebtColumns = `id, owner_id, technology_name, category,
	urgency_level, importance_score, target_proficiency_level,
	estimated_learning_hours, learning_priority, is_active,
	created_at, updated_at`

func (r *skillDebtRepository) Create(ctx context.Context, debt *models.SkillDebt) error {
	now := time.Now()

	query := `
		INSERT INTO ledger_skill_debts (
			owner_id, technology_name, category, urgency_level,
			importance_score, target_proficiency_level,
			estimated_learning_hours, learning_priority, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		debt.OwnerID,
		debt.TechnologyName,
		debt.Category,
		debt.UrgencyLevel,
		debt.ImportanceScore,
		debt.TargetProficiencyLevel,
		debt.EstimatedLearningHours,
		debt.LearningPriority,
		true,
		now,
		now,
	).Scan(&debt.ID, &debt.CreatedAt, &debt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create skill debt: %w", err)
	}

	debt.IsActive = true
	return nil
}

func (r *skillDebtRepository) GetByID(ctx context.Context, ownerID, debtID uuid.UUID) (*models.SkillDebt, error) {
	query := `SELECT ` + skillDebtColumns + ` FROM ledger_skill_debts WHERE owner_id = $1 AND id = $2`

	debt, err := scanSkillDebt(r.db.QueryRow(ctx, query, ownerID, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get skill debt: %w", err)
	}
	return debt, nil
}

func (r *skillDebtRepository) GetActiveByTechnology(ctx context.Context, ownerID uuid.UUID, technology string) (*models.SkillDebt, error) {
	query := `SELECT ` + skillDebtColumns + ` FROM ledger_skill_debts
		WHERE owner_id = $1 AND technology_name = $2 AND is_active`

	debt, err := scanSkillDebt(r.db.QueryRow(ctx, query, ownerID, technology))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get skill debt by technology: %w", err)
	}
	return debt, nil
}

func (r *skillDebtRepository) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*models.SkillDebt, error) {
	query := `SELECT ` + skillDebtColumns + ` FROM ledger_skill_debts
		WHERE owner_id = $1 AND is_active
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.SkillDebt
	for rows.Next() {
		debt, err := scanSkillDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill debt: %w", err)
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

func (r *skillDebtRepository) Deactivate(ctx context.Context, ownerID, debtID uuid.UUID) error {
	query := `UPDATE ledger_skill_debts SET is_active = FALSE, updated_at = NOW() WHERE owner_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, ownerID, debtID)
	if err != nil {
		return fmt.Errorf("failed to deactivate skill debt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanSkillDebt(row pgx.Row) (*models.SkillDebt, error) {
	var debt models.SkillDebt
	err := row.Scan(
		&debt.ID,
		&debt.OwnerID,
		&debt.TechnologyName,
		&debt.Category,
		&debt.UrgencyLevel,
		&debt.ImportanceScore,
		&debt.TargetProficiencyLevel,
		&debt.EstimatedLearningHours,
		&debt.LearningPriority,
		&debt.IsActive,
		&debt.CreatedAt,
		&debt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &debt, nil
}
