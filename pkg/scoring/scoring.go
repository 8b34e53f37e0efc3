// Package scoring holds the pure scoring functions of the ledger engine.
// Every function is total and deterministic: the same record and the same
// constants always produce the same score, with no side effects. All
// numeric constants come from config.ScoringConfig.
package scoring

import (
	"math"

	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
)

// AssetValue maps an asset to its value contribution. The base value is
// scaled by the completion status weight, then discounted by the share of
// the work attributable to AI: two otherwise-identical assets order by AI
// assistance, heavier reliance scoring lower. Clamped at zero.
func AssetValue(cfg *config.ScoringConfig, asset *models.Asset) float64 {
	full := cfg.AssetBaseValue * cfg.StatusWeight(asset.CompletionStatus)
	discount := 1 - float64(asset.AIAssistanceLevel)/100*cfg.AIDiscountFactor
	value := full * discount
	if value < 0 {
		return 0
	}
	return value
}

// MasteryScore maps a net asset to its mastery contribution. Each
// proficiency level owns a fixed score window; the proficiency score
// interpolates within it. A saturated beginner score therefore never
// exceeds an intermediate floor.
func MasteryScore(cfg *config.ScoringConfig, netAsset *models.NetAsset) float64 {
	floor, ceiling := cfg.ProficiencyWindow(netAsset.ProficiencyLevel)
	score := netAsset.ProficiencyScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return floor + (ceiling-floor)*score/100
}

// ImportanceScore maps a skill debt to its importance contribution: the
// urgency weight applied to a concave function of the estimated learning
// hours, so very large estimates cannot dominate ranking.
func ImportanceScore(cfg *config.ScoringConfig, debt *models.SkillDebt) float64 {
	hours := debt.EstimatedLearningHours
	if hours < 0 {
		hours = 0
	}
	return cfg.UrgencyWeight(debt.UrgencyLevel) * math.Log1p(hours)
}

// ImpactScore maps a code debt to its impact contribution: the severity
// weight raised by accumulated effort, since a large unresolved fix at
// equal severity carries more risk than a small one.
func ImpactScore(cfg *config.ScoringConfig, debt *models.CodeDebt) float64 {
	minutes := debt.EffortEstimate
	if minutes < 0 {
		minutes = 0
	}
	return cfg.SeverityWeight(debt.Severity) * (1 + math.Log1p(minutes/60))
}
