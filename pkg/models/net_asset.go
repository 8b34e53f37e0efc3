package models

import (
	"time"

	"github.com/google/uuid"
)

// Proficiency levels, ordered. Shared by NetAsset.ProficiencyLevel and
// SkillDebt.TargetProficiencyLevel.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// ValidProficiencyLevel returns true if s is a known proficiency level.
func ValidProficiencyLevel(s string) bool {
	return ProficiencyOrdinal(s) >= 0
}

// ProficiencyOrdinal returns the rank of a proficiency level (0-3),
// or -1 for an unknown level.
func ProficiencyOrdinal(s string) int {
	switch s {
	case ProficiencyBeginner:
		return 0
	case ProficiencyIntermediate:
		return 1
	case ProficiencyAdvanced:
		return 2
	case ProficiencyExpert:
		return 3
	}
	return -1
}

// NetAsset represents demonstrated, internalized mastery of a technology.
// Stored in ledger_net_assets table. Created or updated only as a side
// effect of verified learning activity, never directly from an Asset.
// At most one active NetAsset exists per (owner_id, technology_name).
type NetAsset struct {
	ID               uuid.UUID  `json:"id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	TechnologyName   string     `json:"technology_name"`
	Category         string     `json:"category,omitempty"`
	ProficiencyLevel string     `json:"proficiency_level"`
	ProficiencyScore float64    `json:"proficiency_score"` // 0-100
	ConfidenceLevel  float64    `json:"confidence_level"`  // 0-1
	MasteryScore     float64    `json:"mastery_score"`
	IsActive         bool       `json:"is_active"`
	LastAssessedAt   *time.Time `json:"last_assessed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
