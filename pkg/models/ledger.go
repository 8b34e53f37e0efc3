package models

import (
	"time"

	"github.com/google/uuid"
)

// Leverage band names, from no outstanding learning debt to critically
// over-leveraged. Band boundaries and rationale text are configuration
// (see pkg/config), not logic.
const (
	LeverageBandNone     = "none"
	LeverageBandLow      = "low"
	LeverageBandModerate = "moderate"
	LeverageBandHigh     = "high"
	LeverageBandCritical = "critical"
)

// Leverage is the derived ratio of outstanding skill debt to demonstrated
// mastery, with its qualitative classification.
type Leverage struct {
	Ratio     float64 `json:"ratio"`
	Band      string  `json:"band"`
	Rationale string  `json:"rationale"`
}

// CodeDebtSummary aggregates an owner's code debt ledger: counts and score
// sums grouped by severity, type and status, plus the resolution rate in
// percent (0 when the ledger is empty, never a division by zero).
type CodeDebtSummary struct {
	TotalCount         int                `json:"total_count"`
	OpenCount          int                `json:"open_count"`
	ResolvedCount      int                `json:"resolved_count"`
	ResolutionRate     float64            `json:"resolution_rate"`
	TotalImpactScore   float64            `json:"total_impact_score"`
	TotalEffortMinutes float64            `json:"total_effort_minutes"`
	CountBySeverity    map[string]int     `json:"count_by_severity"`
	CountByType        map[string]int     `json:"count_by_type"`
	CountByStatus      map[string]int     `json:"count_by_status"`
	ImpactBySeverity   map[string]float64 `json:"impact_by_severity"`
	EffortBySeverity   map[string]float64 `json:"effort_by_severity"`
}

// LedgerSummary is the full computed view of one owner's ledgers.
type LedgerSummary struct {
	OwnerID          uuid.UUID       `json:"owner_id"`
	AssetTotal       float64         `json:"asset_total"`
	NetAssetTotal    float64         `json:"net_asset_total"`
	SkillDebtTotal   float64         `json:"skill_debt_total"`
	ActiveAssets     int             `json:"active_assets"`
	ActiveNetAssets  int             `json:"active_net_assets"`
	ActiveSkillDebts int             `json:"active_skill_debts"`
	CodeDebt         CodeDebtSummary `json:"code_debt"`
	Leverage         Leverage        `json:"leverage"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// Recommendation kinds
const (
	RecommendationKindSkillDebt = "skill_debt"
	RecommendationKindCodeDebt  = "code_debt"
)

// PriorityKey is the composite sort key recommendations are ordered by:
// urgency/severity ordinal descending, then score descending, then age
// (oldest first) so long-standing items are never starved.
type PriorityKey struct {
	Ordinal int     `json:"ordinal"`
	Score   float64 `json:"score"`
	AgeDays int     `json:"age_days"`
}

// Recommendation is one ranked entry in the actionable list. Exactly one of
// SkillDebt or CodeDebt is set, matching Kind.
type Recommendation struct {
	Kind        string      `json:"kind"`
	SkillDebt   *SkillDebt  `json:"skill_debt,omitempty"`
	CodeDebt    *CodeDebt   `json:"code_debt,omitempty"`
	PriorityKey PriorityKey `json:"priority_key"`
	Reason      string      `json:"reason"`
}
