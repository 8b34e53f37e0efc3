package models

import (
	"github.com/google/uuid"

	"github.com/stackwise-ai/ledger-engine/pkg/apperrors"
)

// AssetInput is the mutation request for recording an AI-assisted work
// unit. Scores are derived by the engine, never supplied by callers.
type AssetInput struct {
	OwnerID           uuid.UUID `json:"owner_id"`
	ProjectName       string    `json:"project_name"`
	TechnologyUsed    string    `json:"technology_used"`
	Category          string    `json:"category,omitempty"`
	CompletionStatus  string    `json:"completion_status"`
	AIAssistanceLevel int       `json:"ai_assistance_level"`
	Notes             string    `json:"notes,omitempty"`
}

// Validate checks field ranges and enum membership.
func (in *AssetInput) Validate() error {
	if in.OwnerID == uuid.Nil {
		return apperrors.NewValidationError("owner_id", in.OwnerID, "owner id is required")
	}
	if in.ProjectName == "" {
		return apperrors.NewValidationError("project_name", in.ProjectName, "project name is required")
	}
	if in.TechnologyUsed == "" {
		return apperrors.NewValidationError("technology_used", in.TechnologyUsed, "technology is required")
	}
	if !ValidAssetStatus(in.CompletionStatus) {
		return apperrors.NewValidationError("completion_status", in.CompletionStatus, "unknown completion status")
	}
	if in.AIAssistanceLevel < 0 || in.AIAssistanceLevel > 100 {
		return apperrors.NewValidationError("ai_assistance_level", in.AIAssistanceLevel, "must be between 0 and 100")
	}
	return nil
}

// NetAssetInput is the mutation request for recording demonstrated mastery.
// Upserts by (owner_id, technology_name).
type NetAssetInput struct {
	OwnerID          uuid.UUID `json:"owner_id"`
	TechnologyName   string    `json:"technology_name"`
	Category         string    `json:"category,omitempty"`
	ProficiencyLevel string    `json:"proficiency_level"`
	ProficiencyScore float64   `json:"proficiency_score"`
	ConfidenceLevel  float64   `json:"confidence_level"`
}

// Validate checks field ranges and enum membership.
func (in *NetAssetInput) Validate() error {
	if in.OwnerID == uuid.Nil {
		return apperrors.NewValidationError("owner_id", in.OwnerID, "owner id is required")
	}
	if in.TechnologyName == "" {
		return apperrors.NewValidationError("technology_name", in.TechnologyName, "technology name is required")
	}
	if !ValidProficiencyLevel(in.ProficiencyLevel) {
		return apperrors.NewValidationError("proficiency_level", in.ProficiencyLevel, "unknown proficiency level")
	}
	if in.ProficiencyScore < 0 || in.ProficiencyScore > 100 {
		return apperrors.NewValidationError("proficiency_score", in.ProficiencyScore, "must be between 0 and 100")
	}
	if in.ConfidenceLevel < 0 || in.ConfidenceLevel > 1 {
		return apperrors.NewValidationError("confidence_level", in.ConfidenceLevel, "must be between 0 and 1")
	}
	return nil
}

// SkillDebtInput is the mutation request for recording a knowledge gap.
type SkillDebtInput struct {
	OwnerID                uuid.UUID `json:"owner_id"`
	TechnologyName         string    `json:"technology_name"`
	Category               string    `json:"category,omitempty"`
	UrgencyLevel           string    `json:"urgency_level"`
	TargetProficiencyLevel string    `json:"target_proficiency_level"`
	EstimatedLearningHours float64   `json:"estimated_learning_hours"`
	LearningPriority       int       `json:"learning_priority"`
}

// Validate checks field ranges and enum membership.
func (in *SkillDebtInput) Validate() error {
	if in.OwnerID == uuid.Nil {
		return apperrors.NewValidationError("owner_id", in.OwnerID, "owner id is required")
	}
	if in.TechnologyName == "" {
		return apperrors.NewValidationError("technology_name", in.TechnologyName, "technology name is required")
	}
	if !ValidUrgencyLevel(in.UrgencyLevel) {
		return apperrors.NewValidationError("urgency_level", in.UrgencyLevel, "unknown urgency level")
	}
	if !ValidProficiencyLevel(in.TargetProficiencyLevel) {
		return apperrors.NewValidationError("target_proficiency_level", in.TargetProficiencyLevel, "unknown proficiency level")
	}
	if in.EstimatedLearningHours < 0 {
		return apperrors.NewValidationError("estimated_learning_hours", in.EstimatedLearningHours, "must be non-negative")
	}
	if in.LearningPriority != 0 && (in.LearningPriority < 1 || in.LearningPriority > 5) {
		return apperrors.NewValidationError("learning_priority", in.LearningPriority, "must be between 1 and 5")
	}
	return nil
}

// CodeDebtInput is the mutation request for recording an engineering
// defect. New debts always start in the open status.
type CodeDebtInput struct {
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DebtType        string    `json:"debt_type"`
	Category        string    `json:"category,omitempty"`
	FilePath        string    `json:"file_path"`
	LineStart       int       `json:"line_start"`
	LineEnd         int       `json:"line_end"`
	Severity        string    `json:"severity"`
	Priority        int       `json:"priority"`
	EffortEstimate  float64   `json:"effort_estimate"` // minutes
	DetectionMethod string    `json:"detection_method,omitempty"`
}

// Validate checks field ranges and enum membership.
func (in *CodeDebtInput) Validate() error {
	if in.OwnerID == uuid.Nil {
		return apperrors.NewValidationError("owner_id", in.OwnerID, "owner id is required")
	}
	if in.Title == "" {
		return apperrors.NewValidationError("title", in.Title, "title is required")
	}
	if in.DebtType == "" {
		return apperrors.NewValidationError("debt_type", in.DebtType, "debt type is required")
	}
	if in.FilePath == "" {
		return apperrors.NewValidationError("file_path", in.FilePath, "file path is required")
	}
	if in.LineStart < 0 {
		return apperrors.NewValidationError("line_start", in.LineStart, "must be non-negative")
	}
	if in.LineEnd < in.LineStart {
		return apperrors.NewValidationError("line_end", in.LineEnd, "must not precede line_start")
	}
	if !ValidSeverity(in.Severity) {
		return apperrors.NewValidationError("severity", in.Severity, "unknown severity")
	}
	if in.EffortEstimate < 0 {
		return apperrors.NewValidationError("effort_estimate", in.EffortEstimate, "must be non-negative")
	}
	return nil
}
