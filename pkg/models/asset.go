package models

import (
	"time"

	"github.com/google/uuid"
)

// Completion status values for assets
const (
	AssetStatusNotStarted = "not_started"
	AssetStatusInProgress = "in_progress"
	AssetStatusCompleted  = "completed"
)

// ValidAssetStatus returns true if s is a known completion status.
func ValidAssetStatus(s string) bool {
	switch s {
	case AssetStatusNotStarted, AssetStatusInProgress, AssetStatusCompleted:
		return true
	}
	return false
}

// AssetStatusOrdinal returns the progression rank of a completion status.
// Unknown statuses rank below not_started.
func AssetStatusOrdinal(s string) int {
	switch s {
	case AssetStatusNotStarted:
		return 0
	case AssetStatusInProgress:
		return 1
	case AssetStatusCompleted:
		return 2
	}
	return -1
}

// Asset represents a completed (or in-flight) unit of AI-assisted work.
// Stored in ledger_assets table. AIAssistanceLevel is the share of the work
// attributable to AI, 0-100; heavier AI reliance discounts the asset's
// value score.
type Asset struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	ProjectName       string    `json:"project_name"`
	TechnologyUsed    string    `json:"technology_used"`
	Category          string    `json:"category,omitempty"`
	CompletionStatus  string    `json:"completion_status"`
	AIAssistanceLevel int       `json:"ai_assistance_level"`
	ValueScore        float64   `json:"value_score"`
	Notes             string    `json:"notes,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AssetFilters narrows asset listings.
type AssetFilters struct {
	CompletionStatus string
	Technology       string
	ActiveOnly       bool
}
