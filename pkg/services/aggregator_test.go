package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stackwise-ai/ledger-engine/pkg/models"
)

func newTestAggregator(assets *mockAssetRepo, netAssets *mockNetAssetRepo, skillDebts *mockSkillDebtRepo, codeDebts *mockCodeDebtRepo) Aggregator {
	return NewAggregator(assets, netAssets, skillDebts, codeDebts, testScoringConfig(), zap.NewNop())
}

func TestAggregator_EmptyLedger(t *testing.T) {
	ownerID := uuid.New()
	agg := newTestAggregator(newMockAssetRepo(), newMockNetAssetRepo(), newMockSkillDebtRepo(), newMockCodeDebtRepo())

	summary, err := agg.Summary(context.Background(), ownerID)
	require.NoError(t, err)

	assert.Equal(t, ownerID, summary.OwnerID)
	assert.Equal(t, 0.0, summary.AssetTotal)
	assert.Equal(t, 0.0, summary.NetAssetTotal)
	assert.Equal(t, 0.0, summary.SkillDebtTotal)
	assert.Equal(t, 0, summary.ActiveAssets)
	assert.Equal(t, 0, summary.CodeDebt.TotalCount)
	assert.Equal(t, 0.0, summary.CodeDebt.ResolutionRate)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestAggregator_Totals(t *testing.T) {
	ownerID := uuid.New()
	assets := newMockAssetRepo()
	netAssets := newMockNetAssetRepo()
	skillDebts := newMockSkillDebtRepo()
	codeDebts := newMockCodeDebtRepo()
	ctx := context.Background()

	// Completed asset, no AI assistance: full base value 10.
	require.NoError(t, assets.Create(ctx, &models.Asset{
		OwnerID: ownerID, ProjectName: "cli", TechnologyUsed: "Go",
		CompletionStatus: models.AssetStatusCompleted, AIAssistanceLevel: 0,
	}))
	// Completed asset, fully AI-written: 10 * (1 - 0.5) = 5.
	require.NoError(t, assets.Create(ctx, &models.Asset{
		OwnerID: ownerID, ProjectName: "bot", TechnologyUsed: "Go",
		CompletionStatus: models.AssetStatusCompleted, AIAssistanceLevel: 100,
	}))

	// Advanced at score 50: floor 50 + (75-50)*0.5 = 62.5.
	require.NoError(t, netAssets.Create(ctx, &models.NetAsset{
		OwnerID: ownerID, TechnologyName: "Go",
		ProficiencyLevel: models.ProficiencyAdvanced, ProficiencyScore: 50,
	}))

	// High urgency, 0 hours: importance 3 * ln(1) = 0.
	require.NoError(t, skillDebts.Create(ctx, &models.SkillDebt{
		OwnerID: ownerID, TechnologyName: "Rust",
		UrgencyLevel: models.UrgencyHigh, TargetProficiencyLevel: models.ProficiencyIntermediate,
		EstimatedLearningHours: 0,
	}))

	summary, err := newTestAggregator(assets, netAssets, skillDebts, codeDebts).Summary(ctx, ownerID)
	require.NoError(t, err)

	assert.InDelta(t, 15.0, summary.AssetTotal, 1e-9)
	assert.InDelta(t, 62.5, summary.NetAssetTotal, 1e-9)
	assert.InDelta(t, 0.0, summary.SkillDebtTotal, 1e-9)
	assert.Equal(t, 2, summary.ActiveAssets)
	assert.Equal(t, 1, summary.ActiveNetAssets)
	assert.Equal(t, 1, summary.ActiveSkillDebts)
}

func TestAggregator_ArchivedRecordsExcluded(t *testing.T) {
	ownerID := uuid.New()
	assets := newMockAssetRepo()
	ctx := context.Background()

	active := &models.Asset{
		OwnerID: ownerID, ProjectName: "kept", TechnologyUsed: "Go",
		CompletionStatus: models.AssetStatusCompleted,
	}
	archived := &models.Asset{
		OwnerID: ownerID, ProjectName: "gone", TechnologyUsed: "Go",
		CompletionStatus: models.AssetStatusCompleted,
	}
	require.NoError(t, assets.Create(ctx, active))
	require.NoError(t, assets.Create(ctx, archived))
	require.NoError(t, assets.Deactivate(ctx, ownerID, archived.ID))

	summary, err := newTestAggregator(assets, newMockNetAssetRepo(), newMockSkillDebtRepo(), newMockCodeDebtRepo()).Summary(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ActiveAssets)
	assert.InDelta(t, 10.0, summary.AssetTotal, 1e-9)
}

func TestAggregator_CodeDebtSummary(t *testing.T) {
	ownerID := uuid.New()
	codeDebts := newMockCodeDebtRepo()
	ctx := context.Background()
	now := time.Now()

	// Open high debt, 60 minutes: impact 7.5 * (1 + ln(2)).
	require.NoError(t, codeDebts.Create(ctx, &models.CodeDebt{
		OwnerID: ownerID, Title: "a", DebtType: "reliability", FilePath: "a.go",
		Severity: models.SeverityHigh, EffortEstimate: 60, Status: models.CodeDebtStatusOpen,
	}))
	// In-progress low debt, 0 minutes: impact 2.5.
	require.NoError(t, codeDebts.Create(ctx, &models.CodeDebt{
		OwnerID: ownerID, Title: "b", DebtType: "duplication", FilePath: "b.go",
		Severity: models.SeverityLow, EffortEstimate: 0, Status: models.CodeDebtStatusInProgress,
	}))
	// Resolved debt contributes to counts and rate, not to impact or effort.
	resolved := &models.CodeDebt{
		OwnerID: ownerID, Title: "c", DebtType: "reliability", FilePath: "c.go",
		Severity: models.SeverityCritical, EffortEstimate: 600, Status: models.CodeDebtStatusResolved,
		ResolvedAt: &now,
	}
	require.NoError(t, codeDebts.Create(ctx, resolved))
	// Ignored debt is neither open nor resolved.
	require.NoError(t, codeDebts.Create(ctx, &models.CodeDebt{
		OwnerID: ownerID, Title: "d", DebtType: "style", FilePath: "d.go",
		Severity: models.SeverityLow, Status: models.CodeDebtStatusIgnored,
	}))

	summary, err := newTestAggregator(newMockAssetRepo(), newMockNetAssetRepo(), newMockSkillDebtRepo(), codeDebts).Summary(ctx, ownerID)
	require.NoError(t, err)

	cd := summary.CodeDebt
	assert.Equal(t, 4, cd.TotalCount)
	assert.Equal(t, 2, cd.OpenCount)
	assert.Equal(t, 1, cd.ResolvedCount)
	assert.InDelta(t, 25.0, cd.ResolutionRate, 1e-9)
	assert.InDelta(t, 60.0, cd.TotalEffortMinutes, 1e-9)
	assert.Equal(t, 2, cd.CountByType["reliability"])
	assert.Equal(t, 1, cd.CountByStatus[models.CodeDebtStatusIgnored])
	assert.Equal(t, 2, cd.CountBySeverity[models.SeverityLow])
	assert.Greater(t, cd.ImpactBySeverity[models.SeverityHigh], 7.5)
	assert.Zero(t, cd.ImpactBySeverity[models.SeverityCritical])
}

func TestAggregator_Deterministic(t *testing.T) {
	ownerID := uuid.New()
	assets := newMockAssetRepo()
	ctx := context.Background()
	require.NoError(t, assets.Create(ctx, &models.Asset{
		OwnerID: ownerID, ProjectName: "p", TechnologyUsed: "Go",
		CompletionStatus: models.AssetStatusInProgress, AIAssistanceLevel: 40,
	}))

	agg := newTestAggregator(assets, newMockNetAssetRepo(), newMockSkillDebtRepo(), newMockCodeDebtRepo())

	first, err := agg.Summary(ctx, ownerID)
	require.NoError(t, err)
	second, err := agg.Summary(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, first.AssetTotal, second.AssetTotal)
	assert.Equal(t, first.CodeDebt, second.CodeDebt)
}

func TestAggregator_RepositoryError(t *testing.T) {
	assets := newMockAssetRepo()
	assets.listErr = errors.New("connection reset")

	agg := newTestAggregator(assets, newMockNetAssetRepo(), newMockSkillDebtRepo(), newMockCodeDebtRepo())

	_, err := agg.Summary(context.Background(), uuid.New())
	assert.Error(t, err)
}
