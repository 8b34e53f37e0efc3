package models

import (
	"time"

	"github.com/google/uuid"
)

// Urgency levels for skill debts
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// ValidUrgencyLevel returns true if s is a known urgency level.
func ValidUrgencyLevel(s string) bool {
	return UrgencyOrdinal(s) >= 0
}

// UrgencyOrdinal returns the rank of an urgency level (0-3),
// or -1 for an unknown level.
func UrgencyOrdinal(s string) int {
	switch s {
	case UrgencyLow:
		return 0
	case UrgencyMedium:
		return 1
	case UrgencyHigh:
		return 2
	case UrgencyCritical:
		return 3
	}
	return -1
}

// SkillDebt represents an identified knowledge gap the owner has not yet
// closed. Stored in ledger_skill_debts table. At most one active SkillDebt
// exists per (owner_id, technology_name). A SkillDebt is deactivated when
// an active NetAsset for the same technology reaches the target proficiency
// level, or when explicitly dismissed.
type SkillDebt struct {
	ID                     uuid.UUID `json:"id"`
	OwnerID                uuid.UUID `json:"owner_id"`
	TechnologyName         string    `json:"technology_name"`
	Category               string    `json:"category,omitempty"`
	UrgencyLevel           string    `json:"urgency_level"`
	ImportanceScore        float64   `json:"importance_score"`
	TargetProficiencyLevel string    `json:"target_proficiency_level"`
	EstimatedLearningHours float64   `json:"estimated_learning_hours"`
	LearningPriority       int       `json:"learning_priority"` // informational, 1-5
	IsActive               bool      `json:"is_active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
