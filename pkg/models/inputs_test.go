package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackwise-ai/ledger-engine/pkg/apperrors"
)

func validAssetInput() *AssetInput {
	return &AssetInput{
		OwnerID:           uuid.New(),
		ProjectName:       "etl-pipeline",
		TechnologyUsed:    "Go",
		CompletionStatus:  AssetStatusCompleted,
		AIAssistanceLevel: 50,
	}
}

func TestAssetInput_Validate(t *testing.T) {
	require.NoError(t, validAssetInput().Validate())

	tests := []struct {
		name      string
		mutate    func(*AssetInput)
		wantField string
	}{
		{"missing owner", func(in *AssetInput) { in.OwnerID = uuid.Nil }, "owner_id"},
		{"missing project", func(in *AssetInput) { in.ProjectName = "" }, "project_name"},
		{"missing technology", func(in *AssetInput) { in.TechnologyUsed = "" }, "technology_used"},
		{"unknown status", func(in *AssetInput) { in.CompletionStatus = "done" }, "completion_status"},
		{"ai level too high", func(in *AssetInput) { in.AIAssistanceLevel = 101 }, "ai_assistance_level"},
		{"ai level negative", func(in *AssetInput) { in.AIAssistanceLevel = -1 }, "ai_assistance_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAssetInput()
			tt.mutate(in)

			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func validNetAssetInput() *NetAssetInput {
	return &NetAssetInput{
		OwnerID:          uuid.New(),
		TechnologyName:   "Go",
		ProficiencyLevel: ProficiencyAdvanced,
		ProficiencyScore: 70,
		ConfidenceLevel:  0.8,
	}
}

func TestNetAssetInput_Validate(t *testing.T) {
	require.NoError(t, validNetAssetInput().Validate())

	tests := []struct {
		name      string
		mutate    func(*NetAssetInput)
		wantField string
	}{
		{"missing owner", func(in *NetAssetInput) { in.OwnerID = uuid.Nil }, "owner_id"},
		{"missing technology", func(in *NetAssetInput) { in.TechnologyName = "" }, "technology_name"},
		{"unknown level", func(in *NetAssetInput) { in.ProficiencyLevel = "wizard" }, "proficiency_level"},
		{"score too high", func(in *NetAssetInput) { in.ProficiencyScore = 101 }, "proficiency_score"},
		{"score negative", func(in *NetAssetInput) { in.ProficiencyScore = -0.1 }, "proficiency_score"},
		{"confidence too high", func(in *NetAssetInput) { in.ConfidenceLevel = 1.5 }, "confidence_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNetAssetInput()
			tt.mutate(in)

			err := in.Validate()
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func validSkillDebtInput() *SkillDebtInput {
	return &SkillDebtInput{
		OwnerID:                uuid.New(),
		TechnologyName:         "Rust",
		UrgencyLevel:           UrgencyHigh,
		TargetProficiencyLevel: ProficiencyIntermediate,
		EstimatedLearningHours: 40,
	}
}

func TestSkillDebtInput_Validate(t *testing.T) {
	require.NoError(t, validSkillDebtInput().Validate())

	// Zero learning priority means unset, not invalid.
	in := validSkillDebtInput()
	in.LearningPriority = 0
	require.NoError(t, in.Validate())

	tests := []struct {
		name      string
		mutate    func(*SkillDebtInput)
		wantField string
	}{
		{"missing owner", func(in *SkillDebtInput) { in.OwnerID = uuid.Nil }, "owner_id"},
		{"missing technology", func(in *SkillDebtInput) { in.TechnologyName = "" }, "technology_name"},
		{"unknown urgency", func(in *SkillDebtInput) { in.UrgencyLevel = "urgent" }, "urgency_level"},
		{"unknown target", func(in *SkillDebtInput) { in.TargetProficiencyLevel = "guru" }, "target_proficiency_level"},
		{"negative hours", func(in *SkillDebtInput) { in.EstimatedLearningHours = -1 }, "estimated_learning_hours"},
		{"priority out of range", func(in *SkillDebtInput) { in.LearningPriority = 6 }, "learning_priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSkillDebtInput()
			tt.mutate(in)

			err := in.Validate()
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func validCodeDebtInput() *CodeDebtInput {
	return &CodeDebtInput{
		OwnerID:        uuid.New(),
		Title:          "duplicated parsing logic",
		DebtType:       "duplication",
		FilePath:       "pkg/parse/parse.go",
		LineStart:      10,
		LineEnd:        40,
		Severity:       SeverityMedium,
		EffortEstimate: 90,
	}
}

func TestCodeDebtInput_Validate(t *testing.T) {
	require.NoError(t, validCodeDebtInput().Validate())

	tests := []struct {
		name      string
		mutate    func(*CodeDebtInput)
		wantField string
	}{
		{"missing owner", func(in *CodeDebtInput) { in.OwnerID = uuid.Nil }, "owner_id"},
		{"missing title", func(in *CodeDebtInput) { in.Title = "" }, "title"},
		{"missing type", func(in *CodeDebtInput) { in.DebtType = "" }, "debt_type"},
		{"missing path", func(in *CodeDebtInput) { in.FilePath = "" }, "file_path"},
		{"negative line start", func(in *CodeDebtInput) { in.LineStart = -1 }, "line_start"},
		{"line end before start", func(in *CodeDebtInput) { in.LineEnd = 5 }, "line_end"},
		{"unknown severity", func(in *CodeDebtInput) { in.Severity = "blocker" }, "severity"},
		{"negative effort", func(in *CodeDebtInput) { in.EffortEstimate = -10 }, "effort_estimate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCodeDebtInput()
			tt.mutate(in)

			err := in.Validate()
			require.Error(t, err)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}
