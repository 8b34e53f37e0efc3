package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
	"github.com/stackwise-ai/ledger-engine/pkg/repositories"
	"github.com/stackwise-ai/ledger-engine/pkg/scoring"
)

// RecommendationRanker orders open skill and code debts into an actionable
// list. Ranking is a read-only projection recomputed on every call; it
// never mutates priority or status fields.
type RecommendationRanker interface {
	Rank(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Recommendation, error)
}

type recommendationRanker struct {
	skillDebts   repositories.SkillDebtRepository
	codeDebts    repositories.CodeDebtRepository
	scoring      *config.ScoringConfig
	defaultLimit int
	logger       *zap.Logger
}

// NewRecommendationRanker creates a new RecommendationRanker. defaultLimit
// applies when a caller passes a non-positive limit.
func NewRecommendationRanker(
	skillDebts repositories.SkillDebtRepository,
	codeDebts repositories.CodeDebtRepository,
	scoringCfg *config.ScoringConfig,
	defaultLimit int,
	logger *zap.Logger,
) RecommendationRanker {
	return &recommendationRanker{
		skillDebts:   skillDebts,
		codeDebts:    codeDebts,
		scoring:      scoringCfg,
		defaultLimit: defaultLimit,
		logger:       logger.Named("recommendation-ranker"),
	}
}

var _ RecommendationRanker = (*recommendationRanker)(nil)

func (r *recommendationRanker) Rank(ctx context.Context, ownerID uuid.UUID, limit int) ([]*models.Recommendation, error) {
	if limit <= 0 {
		limit = r.defaultLimit
	}

	skillDebts, err := r.skillDebts.ListActive(ctx, ownerID)
	if err != nil {
		r.logger.Error("Failed to list skill debts for ranking",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	codeDebts, err := r.codeDebts.List(ctx, ownerID, models.CodeDebtFilters{})
	if err != nil {
		r.logger.Error("Failed to list code debts for ranking",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, err
	}

	now := time.Now()
	recommendations := make([]*models.Recommendation, 0, len(skillDebts)+len(codeDebts))

	for _, debt := range skillDebts {
		recommendations = append(recommendations, r.skillDebtRecommendation(debt, now))
	}
	for _, debt := range codeDebts {
		// Terminal debts are settled; only open work is actionable.
		if debt.Status != models.CodeDebtStatusOpen && debt.Status != models.CodeDebtStatusInProgress {
			continue
		}
		recommendations = append(recommendations, r.codeDebtRecommendation(debt, now))
	}

	// Urgency/severity ordinal first, then score, then age: long-standing
	// items win ties so they are never starved.
	sort.SliceStable(recommendations, func(i, j int) bool {
		a, b := recommendations[i].PriorityKey, recommendations[j].PriorityKey
		if a.Ordinal != b.Ordinal {
			return a.Ordinal > b.Ordinal
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.AgeDays > b.AgeDays
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}
	return recommendations, nil
}

func (r *recommendationRanker) skillDebtRecommendation(debt *models.SkillDebt, now time.Time) *models.Recommendation {
	ageDays := int(now.Sub(debt.CreatedAt).Hours() / 24)
	if ageDays < 0 {
		ageDays = 0
	}
	return &models.Recommendation{
		Kind:      models.RecommendationKindSkillDebt,
		SkillDebt: debt,
		PriorityKey: models.PriorityKey{
			Ordinal: models.UrgencyOrdinal(debt.UrgencyLevel),
			Score:   scoring.ImportanceScore(r.scoring, debt),
			AgeDays: ageDays,
		},
		Reason: fmt.Sprintf("%s urgency gap in %s: about %s of study to reach %s",
			debt.UrgencyLevel, debt.TechnologyName,
			countNoun(int(debt.EstimatedLearningHours), "hour"),
			debt.TargetProficiencyLevel),
	}
}

func (r *recommendationRanker) codeDebtRecommendation(debt *models.CodeDebt, now time.Time) *models.Recommendation {
	return &models.Recommendation{
		Kind:     models.RecommendationKindCodeDebt,
		CodeDebt: debt,
		PriorityKey: models.PriorityKey{
			Ordinal: models.SeverityOrdinal(debt.Severity),
			Score:   scoring.ImpactScore(r.scoring, debt),
			AgeDays: debt.AgeDays(now),
		},
		Reason: fmt.Sprintf("%s %s in %s: open for %s",
			debt.Severity, debt.DebtType, debt.FilePath,
			countNoun(debt.AgeDays(now), "day")),
	}
}

// countNoun renders "1 hour" / "3 hours" style phrases.
func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %s", n, inflection.Plural(noun))
}
