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

// CodeDebtRepository provides data access for engineering defect records.
// Code debts are never deleted; status transitions are validated by the
// facade before Update is called.
type CodeDebtRepository interface {
	Create(ctx context.Context, debt *models.CodeDebt) error
	GetByID(ctx context.Context, ownerID, debtID uuid.UUID) (*models.CodeDebt, error)
	List(ctx context.Context, ownerID uuid.UUID, filters models.CodeDebtFilters) ([]*models.CodeDebt, error)
	Update(ctx context.Context, debt *models.CodeDebt) error
}

type codeDebtRepository struct {
	db *database.DB
}

// NewCodeDebtRepository creates a new CodeDebtRepository.
func NewCodeDebtRepository(db *database.DB) CodeDebtRepository {
	return &codeDebtRepository{db: db}
}

var _ CodeDebtRepository = (*codeDebtRepository)(nil)

const codeDebtColumns = `id, owner_id, title, description, debt_type,
	category, file_path, line_start, line_end, severity, priority,
	impact_score, effort_estimate, status, detection_method,
	resolution_notes, first_detected, resolved_at, created_at, updated_at`

func (r *codeDebtRepository) Create(ctx context.Context, debt *models.CodeDebt) error {
	now := time.Now()
	if debt.FirstDetected.IsZero() {
		debt.FirstDetected = now
	}

	query := `
		INSERT INTO ledger_code_debts (
			owner_id, title, description, debt_type, category, file_path,
			line_start, line_end, severity, priority, impact_score,
			effort_estimate, status, detection_method, resolution_notes,
			first_detected, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		debt.OwnerID,
		debt.Title,
		debt.Description,
		debt.DebtType,
		debt.Category,
		debt.FilePath,
		debt.LineStart,
		debt.LineEnd,
		debt.Severity,
		debt.Priority,
		debt.ImpactScore,
		debt.EffortEstimate,
		debt.Status,
		debt.DetectionMethod,
		debt.ResolutionNotes,
		debt.FirstDetected,
		now,
		now,
	).Scan(&debt.ID, &debt.CreatedAt, &debt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create code debt: %w", err)
	}
	return nil
}

func (r *codeDebtRepository) GetByID(ctx context.Context, ownerID, debtID uuid.UUID) (*models.CodeDebt, error) {
	query := `SELECT ` + codeDebtColumns + ` FROM ledger_code_debts WHERE owner_id = $1 AND id = $2`

	debt, err := scanCodeDebt(r.db.QueryRow(ctx, query, ownerID, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get code debt: %w", err)
	}
	return debt, nil
}

func (r *codeDebtRepository) List(ctx context.Context, ownerID uuid.UUID, filters models.CodeDebtFilters) ([]*models.CodeDebt, error) {
	query := `SELECT ` + codeDebtColumns + ` FROM ledger_code_debts WHERE owner_id = $1`
	args := []any{ownerID}

	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filters.Severity != "" {
		args = append(args, filters.Severity)
		query += fmt.Sprintf(` AND severity = $%d`, len(args))
	}
	if filters.DebtType != "" {
		args = append(args, filters.DebtType)
		query += fmt.Sprintf(` AND debt_type = $%d`, len(args))
	}
	query += ` ORDER BY first_detected, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list code debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.CodeDebt
	for rows.Next() {
		debt, err := scanCodeDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan code debt: %w", err)
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

func (r *codeDebtRepository) Update(ctx context.Context, debt *models.CodeDebt) error {
	query := `
		UPDATE ledger_code_debts
		SET status = $3, priority = $4, impact_score = $5,
		    resolution_notes = $6, resolved_at = $7, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		debt.OwnerID,
		debt.ID,
		debt.Status,
		debt.Priority,
		debt.ImpactScore,
		debt.ResolutionNotes,
		debt.ResolvedAt,
	).Scan(&debt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update code debt: %w", err)
	}
	return nil
}

func scanCodeDebt(row pgx.Row) (*models.CodeDebt, error) {
	var debt models.CodeDebt
	err := row.Scan(
		&debt.ID,
		&debt.OwnerID,
		&debt.Title,
		&debt.Description,
		&debt.DebtType,
		&debt.Category,
		&debt.FilePath,
		&debt.LineStart,
		&debt.LineEnd,
		&debt.Severity,
		&debt.Priority,
		&debt.ImpactScore,
		&debt.EffortEstimate,
		&debt.Status,
		&debt.DetectionMethod,
		&debt.ResolutionNotes,
		&debt.FirstDetected,
		&debt.ResolvedAt,
		&debt.CreatedAt,
		&debt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &debt, nil
}
