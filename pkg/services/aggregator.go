package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
	"github.com/stackwise-ai/ledger-engine/pkg/repositories"
	"github.com/stackwise-ai/ledger-engine/pkg/scoring"
)

// Aggregator computes ledger totals and distributions for one owner.
// It is a read-only projection over a repository snapshot: identical
// snapshots produce identical totals, and an empty ledger produces a
// zeroed summary rather than an error. Leverage classification is layered
// on by the facade.
type Aggregator interface {
	Summary(ctx context.Context, ownerID uuid.UUID) (*models.LedgerSummary, error)
}

type aggregator struct {
	assets     repositories.AssetRepository
	netAssets  repositories.NetAssetRepository
	skillDebts repositories.SkillDebtRepository
	codeDebts  repositories.CodeDebtRepository
	scoring    *config.ScoringConfig
	logger     *zap.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(
	assets repositories.AssetRepository,
	netAssets repositories.NetAssetRepository,
	skillDebts repositories.SkillDebtRepository,
	codeDebts repositories.CodeDebtRepository,
	scoringCfg *config.ScoringConfig,
	logger *zap.Logger,
) Aggregator {
	return &aggregator{
		assets:     assets,
		netAssets:  netAssets,
		skillDebts: skillDebts,
		codeDebts:  codeDebts,
		scoring:    scoringCfg,
		logger:     logger.Named("aggregator"),
	}
}

var _ Aggregator = (*aggregator)(nil)

func (a *aggregator) Summary(ctx context.Context, ownerID uuid.UUID) (*models.LedgerSummary, error) {
	assets, err := a.assets.List(ctx, ownerID, models.AssetFilters{ActiveOnly: true})
	if err != nil {
		a.logger.Error("Failed to list assets for summary",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	netAssets, err := a.netAssets.ListActive(ctx, ownerID)
	if err != nil {
		a.logger.Error("Failed to list net assets for summary",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	skillDebts, err := a.skillDebts.ListActive(ctx, ownerID)
	if err != nil {
		a.logger.Error("Failed to list skill debts for summary",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	codeDebts, err := a.codeDebts.List(ctx, ownerID, models.CodeDebtFilters{})
	if err != nil {
		a.logger.Error("Failed to list code debts for summary",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	summary := &models.LedgerSummary{
		OwnerID:          ownerID,
		ActiveAssets:     len(assets),
		ActiveNetAssets:  len(netAssets),
		ActiveSkillDebts: len(skillDebts),
		GeneratedAt:      time.Now(),
	}

	for _, asset := range assets {
		summary.AssetTotal += scoring.AssetValue(a.scoring, asset)
	}
	for _, netAsset := range netAssets {
		summary.NetAssetTotal += scoring.MasteryScore(a.scoring, netAsset)
	}
	for _, debt := range skillDebts {
		summary.SkillDebtTotal += scoring.ImportanceScore(a.scoring, debt)
	}
	summary.CodeDebt = a.summarizeCodeDebts(codeDebts)

	return summary, nil
}

// summarizeCodeDebts folds the code debt ledger into counts and score sums
// grouped by severity, type and status. Impact and effort totals cover
// unresolved (open or in-progress) debts only; a resolved defect no longer
// contributes risk.
func (a *aggregator) summarizeCodeDebts(debts []*models.CodeDebt) models.CodeDebtSummary {
	summary := models.CodeDebtSummary{
		CountBySeverity:  make(map[string]int),
		CountByType:      make(map[string]int),
		CountByStatus:    make(map[string]int),
		ImpactBySeverity: make(map[string]float64),
		EffortBySeverity: make(map[string]float64),
	}

	for _, debt := range debts {
		summary.TotalCount++
		summary.CountBySeverity[debt.Severity]++
		summary.CountByType[debt.DebtType]++
		summary.CountByStatus[debt.Status]++

		switch debt.Status {
		case models.CodeDebtStatusResolved:
			summary.ResolvedCount++
		case models.CodeDebtStatusOpen, models.CodeDebtStatusInProgress:
			summary.OpenCount++
			impact := scoring.ImpactScore(a.scoring, debt)
			summary.TotalImpactScore += impact
			summary.TotalEffortMinutes += debt.EffortEstimate
			summary.ImpactBySeverity[debt.Severity] += impact
			summary.EffortBySeverity[debt.Severity] += debt.EffortEstimate
		}
	}

	if summary.TotalCount > 0 {
		summary.ResolutionRate = float64(summary.ResolvedCount) / float64(summary.TotalCount) * 100
	}
	return summary
}
