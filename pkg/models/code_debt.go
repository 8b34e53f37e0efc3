package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stackwise-ai/ledger-engine/pkg/apperrors"
)

// Severity levels for code debts
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// ValidSeverity returns true if s is a known severity level.
func ValidSeverity(s string) bool {
	return SeverityOrdinal(s) >= 0
}

// SeverityOrdinal returns the rank of a severity level (0-3, low to
// critical), or -1 for an unknown level.
func SeverityOrdinal(s string) int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return -1
}

// Code debt status values. Resolved, ignored and wont_fix are terminal;
// a resolved item can never be reopened, only recreated.
const (
	CodeDebtStatusOpen       = "open"
	CodeDebtStatusInProgress = "in_progress"
	CodeDebtStatusResolved   = "resolved"
	CodeDebtStatusIgnored    = "ignored"
	CodeDebtStatusWontFix    = "wont_fix"
)

// ValidCodeDebtStatus returns true if s is a known code debt status.
func ValidCodeDebtStatus(s string) bool {
	switch s {
	case CodeDebtStatusOpen, CodeDebtStatusInProgress, CodeDebtStatusResolved,
		CodeDebtStatusIgnored, CodeDebtStatusWontFix:
		return true
	}
	return false
}

// codeDebtTransitions is the allowed status transition table.
var codeDebtTransitions = map[string][]string{
	CodeDebtStatusOpen:       {CodeDebtStatusInProgress, CodeDebtStatusResolved, CodeDebtStatusIgnored, CodeDebtStatusWontFix},
	CodeDebtStatusInProgress: {CodeDebtStatusResolved, CodeDebtStatusIgnored},
	CodeDebtStatusResolved:   {},
	CodeDebtStatusIgnored:    {},
	CodeDebtStatusWontFix:    {},
}

// CanTransitionCodeDebt reports whether a code debt may move from one
// status to another.
func CanTransitionCodeDebt(from, to string) bool {
	for _, allowed := range codeDebtTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CodeDebt represents a classic engineering defect tied to a source
// location, independent of the skill ledgers. Stored in ledger_code_debts
// table.
type CodeDebt struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DebtType        string     `json:"debt_type"`
	Category        string     `json:"category,omitempty"`
	FilePath        string     `json:"file_path"`
	LineStart       int        `json:"line_start"`
	LineEnd         int        `json:"line_end"`
	Severity        string     `json:"severity"`
	Priority        int        `json:"priority"`
	ImpactScore     float64    `json:"impact_score"`
	EffortEstimate  float64    `json:"effort_estimate"` // minutes
	Status          string     `json:"status"`
	DetectionMethod string     `json:"detection_method,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	FirstDetected   time.Time  `json:"first_detected"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Transition validates and applies a status change. A transition into
// resolved stamps ResolvedAt; transitions out of resolved (or any other
// terminal state) fail with an InvalidTransitionError.
func (d *CodeDebt) Transition(to string, now time.Time) error {
	if !ValidCodeDebtStatus(to) {
		return apperrors.NewValidationError("status", to, "unknown code debt status")
	}
	if !CanTransitionCodeDebt(d.Status, to) {
		return apperrors.NewInvalidTransitionError(d.Status, to)
	}
	d.Status = to
	if to == CodeDebtStatusResolved {
		resolved := now
		d.ResolvedAt = &resolved
	}
	return nil
}

// AgeDays derives the debt's age in whole days. For resolved debts the age
// freezes at resolution time; it is never stored, avoiding drift.
func (d *CodeDebt) AgeDays(now time.Time) int {
	end := now
	if d.ResolvedAt != nil {
		end = *d.ResolvedAt
	}
	age := end.Sub(d.FirstDetected)
	if age < 0 {
		return 0
	}
	return int(age.Hours() / 24)
}

// CodeDebtFilters narrows code debt listings.
type CodeDebtFilters struct {
	Status   string
	Severity string
	DebtType string
}
