package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stackwise-ai/ledger-engine/pkg/apperrors"
	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
	"github.com/stackwise-ai/ledger-engine/pkg/repositories"
	"github.com/stackwise-ai/ledger-engine/pkg/scoring"
)

// defaultLearningPriority applies when a skill debt input leaves the
// informational 1-5 priority unset.
const defaultLearningPriority = 3

// LedgerService is the single entry point for collaborators (API layer,
// UI backend). It validates mutation requests, serializes writes per
// owner, derives all scores, and delegates reads to the aggregator and
// ranker. Every rejected mutation returns a typed error with enough
// context to correct the input.
type LedgerService interface {
	RecordAsset(ctx context.Context, in *models.AssetInput) (*models.Asset, error)
	UpdateAssetStatus(ctx context.Context, ownerID, assetID uuid.UUID, status string) (*models.Asset, error)
	ArchiveAsset(ctx context.Context, ownerID, assetID uuid.UUID) error
	RecordNetAsset(ctx context.Context, in *models.NetAssetInput) (*models.NetAsset, error)
	RecordSkillDebt(ctx context.Context, in *models.SkillDebtInput) (*models.SkillDebt, error)
	DismissSkillDebt(ctx context.Context, ownerID, debtID uuid.UUID) error
	RecordCodeDebt(ctx context.Context, in *models.CodeDebtInput) (*models.CodeDebt, error)
	UpdateCodeDebtStatus(ctx context.Context, ownerID, debtID uuid.UUID, status string) (*models.CodeDebt, error)
	ResolveCodeDebt(ctx context.Context, ownerID, debtID uuid.UUID, resolutionNotes string) (*models.CodeDebt, error)
	GetSummary(ctx context.Context, ownerID uuid.UUID) (*models.LedgerSummary, error)
	GetRecommendations(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Recommendation, error)
}

type ledgerService struct {
	assets     repositories.AssetRepository
	netAssets  repositories.NetAssetRepository
	skillDebts repositories.SkillDebtRepository
	codeDebts  repositories.CodeDebtRepository
	aggregator Aggregator
	ranker     RecommendationRanker
	classifier *LeverageClassifier
	scoring    *config.ScoringConfig
	locks      *ownerLocks
	logger     *zap.Logger
}

// NewLedgerService creates the ledger facade.
func NewLedgerService(
	assets repositories.AssetRepository,
	netAssets repositories.NetAssetRepository,
	skillDebts repositories.SkillDebtRepository,
	codeDebts repositories.CodeDebtRepository,
	aggregator Aggregator,
	ranker RecommendationRanker,
	classifier *LeverageClassifier,
	scoringCfg *config.ScoringConfig,
	logger *zap.Logger,
) LedgerService {
	return &ledgerService{
		assets:     assets,
		netAssets:  netAssets,
		skillDebts: skillDebts,
		codeDebts:  codeDebts,
		aggregator: aggregator,
		ranker:     ranker,
		classifier: classifier,
		scoring:    scoringCfg,
		locks:      newOwnerLocks(),
		logger:     logger.Named("ledger-service"),
	}
}

var _ LedgerService = (*ledgerService)(nil)

// ============================================================================
// Asset ledger
// ============================================================================

func (s *ledgerService) RecordAsset(ctx context.Context, in *models.AssetInput) (*models.Asset, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		OwnerID:           in.OwnerID,
		ProjectName:       in.ProjectName,
		TechnologyUsed:    in.TechnologyUsed,
		Category:          in.Category,
		CompletionStatus:  in.CompletionStatus,
		AIAssistanceLevel: in.AIAssistanceLevel,
		Notes:             in.Notes,
	}
	asset.ValueScore = scoring.AssetValue(s.scoring, asset)

	unlock := s.locks.Lock(in.OwnerID)
	defer unlock()

	if err := s.assets.Create(ctx, asset); err != nil {
		s.logger.Error("Failed to record asset",
			zap.String("owner_id", in.OwnerID.String()),
			zap.String("project", in.ProjectName),
			zap.Error(err))
		return nil, err
	}
	return asset, nil
}

func (s *ledgerService) UpdateAssetStatus(ctx context.Context, ownerID, assetID uuid.UUID, status string) (*models.Asset, error) {
	if !models.ValidAssetStatus(status) {
		return nil, apperrors.NewValidationError("completion_status", status, "unknown completion status")
	}

	unlock := s.locks.Lock(ownerID)
	defer unlock()

	asset, err := s.assets.GetByID(ctx, ownerID, assetID)
	if err != nil {
		return nil, err
	}

	asset.CompletionStatus = status
	asset.ValueScore = scoring.AssetValue(s.scoring, asset)

	if err := s.assets.Update(ctx, asset); err != nil {
		s.logger.Error("Failed to update asset status",
			zap.String("owner_id", ownerID.String()),
			zap.String("asset_id", assetID.String()),
			zap.Error(err))
		return nil, err
	}
	return asset, nil
}

func (s *ledgerService) ArchiveAsset(ctx context.Context, ownerID, assetID uuid.UUID) error {
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	if err := s.assets.Deactivate(ctx, ownerID, assetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Failed to archive asset",
				zap.String("owner_id", ownerID.String()),
				zap.String("asset_id", assetID.String()),
				zap.Error(err))
		}
		return err
	}
	return nil
}

// ============================================================================
// NetAsset ledger
// ============================================================================

// RecordNetAsset upserts demonstrated mastery by (owner, technology). Any
// active skill debt for the technology whose target the new proficiency
// meets is deactivated in the same operation.
func (s *ledgerService) RecordNetAsset(ctx context.Context, in *models.NetAssetInput) (*models.NetAsset, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(in.OwnerID)
	defer unlock()

	now := time.Now()
	netAsset, err := s.netAssets.GetActiveByTechnology(ctx, in.OwnerID, in.TechnologyName)
	switch {
	case err == nil:
		netAsset.Category = in.Category
		netAsset.ProficiencyLevel = in.ProficiencyLevel
		netAsset.ProficiencyScore = in.ProficiencyScore
		netAsset.ConfidenceLevel = in.ConfidenceLevel
		netAsset.MasteryScore = scoring.MasteryScore(s.scoring, netAsset)
		netAsset.LastAssessedAt = &now
		if err := s.netAssets.Update(ctx, netAsset); err != nil {
			s.logger.Error("Failed to update net asset",
				zap.String("owner_id", in.OwnerID.String()),
				zap.String("technology", in.TechnologyName),
				zap.Error(err))
			return nil, err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		netAsset = &models.NetAsset{
			OwnerID:          in.OwnerID,
			TechnologyName:   in.TechnologyName,
			Category:         in.Category,
			ProficiencyLevel: in.ProficiencyLevel,
			ProficiencyScore: in.ProficiencyScore,
			ConfidenceLevel:  in.ConfidenceLevel,
			LastAssessedAt:   &now,
		}
		netAsset.MasteryScore = scoring.MasteryScore(s.scoring, netAsset)
		if err := s.netAssets.Create(ctx, netAsset); err != nil {
			s.logger.Error("Failed to create net asset",
				zap.String("owner_id", in.OwnerID.String()),
				zap.String("technology", in.TechnologyName),
				zap.Error(err))
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.settleSkillDebt(ctx, netAsset); err != nil {
		return nil, err
	}
	return netAsset, nil
}

// settleSkillDebt deactivates an active skill debt for the net asset's
// technology once the recorded proficiency reaches its target. An active
// net asset and an active skill debt whose target it satisfies must never
// coexist.
func (s *ledgerService) settleSkillDebt(ctx context.Context, netAsset *models.NetAsset) error {
	debt, err := s.skillDebts.GetActiveByTechnology(ctx, netAsset.OwnerID, netAsset.TechnologyName)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if models.ProficiencyOrdinal(netAsset.ProficiencyLevel) < models.ProficiencyOrdinal(debt.TargetProficiencyLevel) {
		return nil
	}

	if err := s.skillDebts.Deactivate(ctx, debt.OwnerID, debt.ID); err != nil {
		s.logger.Error("Failed to settle skill debt",
			zap.String("owner_id", debt.OwnerID.String()),
			zap.String("technology", debt.TechnologyName),
			zap.Error(err))
		return err
	}

	s.logger.Info("Skill debt settled by demonstrated mastery",
		zap.String("owner_id", debt.OwnerID.String()),
		zap.String("technology", debt.TechnologyName),
		zap.String("target_level", debt.TargetProficiencyLevel),
		zap.String("reached_level", netAsset.ProficiencyLevel))
	return nil
}

// ============================================================================
// SkillDebt ledger
// ============================================================================

func (s *ledgerService) RecordSkillDebt(ctx context.Context, in *models.SkillDebtInput) (*models.SkillDebt, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(in.OwnerID)
	defer unlock()

	// A gap that demonstrated mastery already covers is not a debt.
	netAsset, err := s.netAssets.GetActiveByTechnology(ctx, in.OwnerID, in.TechnologyName)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if netAsset != nil && models.ProficiencyOrdinal(netAsset.ProficiencyLevel) >= models.ProficiencyOrdinal(in.TargetProficiencyLevel) {
		return nil, fmt.Errorf("%w: active net asset for %q already at %s (target %s)",
			apperrors.ErrConflict, in.TechnologyName, netAsset.ProficiencyLevel, in.TargetProficiencyLevel)
	}

	debt := &models.SkillDebt{
		OwnerID:                in.OwnerID,
		TechnologyName:         in.TechnologyName,
		Category:               in.Category,
		UrgencyLevel:           in.UrgencyLevel,
		TargetProficiencyLevel: in.TargetProficiencyLevel,
		EstimatedLearningHours: in.EstimatedLearningHours,
		LearningPriority:       in.LearningPriority,
	}
	if debt.LearningPriority == 0 {
		debt.LearningPriority = defaultLearningPriority
	}
	debt.ImportanceScore = scoring.ImportanceScore(s.scoring, debt)

	if err := s.skillDebts.Create(ctx, debt); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: active skill debt for %q already exists",
				apperrors.ErrConflict, in.TechnologyName)
		}
		s.logger.Error("Failed to record skill debt",
			zap.String("owner_id", in.OwnerID.String()),
			zap.String("technology", in.TechnologyName),
			zap.Error(err))
		return nil, err
	}
	return debt, nil
}

func (s *ledgerService) DismissSkillDebt(ctx context.Context, ownerID, debtID uuid.UUID) error {
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	if err := s.skillDebts.Deactivate(ctx, ownerID, debtID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Failed to dismiss skill debt",
				zap.String("owner_id", ownerID.String()),
				zap.String("debt_id", debtID.String()),
				zap.Error(err))
		}
		return err
	}
	return nil
}

// ============================================================================
// CodeDebt ledger
// ============================================================================

func (s *ledgerService) RecordCodeDebt(ctx context.Context, in *models.CodeDebtInput) (*models.CodeDebt, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	debt := &models.CodeDebt{
		OwnerID:         in.OwnerID,
		Title:           in.Title,
		Description:     in.Description,
		DebtType:        in.DebtType,
		Category:        in.Category,
		FilePath:        in.FilePath,
		LineStart:       in.LineStart,
		LineEnd:         in.LineEnd,
		Severity:        in.Severity,
		Priority:        in.Priority,
		EffortEstimate:  in.EffortEstimate,
		Status:          models.CodeDebtStatusOpen,
		DetectionMethod: in.DetectionMethod,
	}
	debt.ImpactScore = scoring.ImpactScore(s.scoring, debt)

	unlock := s.locks.Lock(in.OwnerID)
	defer unlock()

	if err := s.codeDebts.Create(ctx, debt); err != nil {
		s.logger.Error("Failed to record code debt",
			zap.String("owner_id", in.OwnerID.String()),
			zap.String("title", in.Title),
			zap.Error(err))
		return nil, err
	}
	return debt, nil
}

func (s *ledgerService) UpdateCodeDebtStatus(ctx context.Context, ownerID, debtID uuid.UUID, status string) (*models.CodeDebt, error) {
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	debt, err := s.codeDebts.GetByID(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	if err := debt.Transition(status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.codeDebts.Update(ctx, debt); err != nil {
		s.logger.Error("Failed to update code debt status",
			zap.String("owner_id", ownerID.String()),
			zap.String("debt_id", debtID.String()),
			zap.String("status", status),
			zap.Error(err))
		return nil, err
	}
	return debt, nil
}

func (s *ledgerService) ResolveCodeDebt(ctx context.Context, ownerID, debtID uuid.UUID, resolutionNotes string) (*models.CodeDebt, error) {
	unlock := s.locks.Lock(ownerID)
	defer unlock()

	debt, err := s.codeDebts.GetByID(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	if err := debt.Transition(models.CodeDebtStatusResolved, time.Now()); err != nil {
		return nil, err
	}
	debt.ResolutionNotes = resolutionNotes

	if err := s.codeDebts.Update(ctx, debt); err != nil {
		s.logger.Error("Failed to resolve code debt",
			zap.String("owner_id", ownerID.String()),
			zap.String("debt_id", debtID.String()),
			zap.Error(err))
		return nil, err
	}
	return debt, nil
}

// ============================================================================
// Reads
// ============================================================================

func (s *ledgerService) GetSummary(ctx context.Context, ownerID uuid.UUID) (*models.LedgerSummary, error) {
	summary, err := s.aggregator.Summary(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summary.Leverage = s.classifier.Classify(summary.SkillDebtTotal, summary.NetAssetTotal)
	return summary, nil
}

func (s *ledgerService) GetRecommendations(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Recommendation, error) {
	return s.ranker.Rank(ctx, ownerID, limit)
}
