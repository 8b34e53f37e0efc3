package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stackwise-ai/ledger-engine/pkg/apperrors"
	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
)

// ============================================================================
// Shared Mock Repositories for Service Tests
// ============================================================================

// testScoringConfig returns the default scoring constants used across
// service tests.
func testScoringConfig() *config.ScoringConfig {
	return &config.ScoringConfig{
		AssetBaseValue:         10,
		AIDiscountFactor:       0.5,
		StatusWeightNotStarted: 0,
		StatusWeightInProgress: 0.4,
		StatusWeightCompleted:  1.0,

		ProficiencyCeilingBeginner:     25,
		ProficiencyCeilingIntermediate: 50,
		ProficiencyCeilingAdvanced:     75,
		ProficiencyCeilingExpert:       100,

		UrgencyWeightLow:      1,
		UrgencyWeightMedium:   2,
		UrgencyWeightHigh:     3,
		UrgencyWeightCritical: 4,

		SeverityWeightLow:      2.5,
		SeverityWeightMedium:   5,
		SeverityWeightHigh:     7.5,
		SeverityWeightCritical: 10,
	}
}

type mockAssetRepo struct {
	assets    []*models.Asset
	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func newMockAssetRepo() *mockAssetRepo {
	return &mockAssetRepo{}
}

func (m *mockAssetRepo) Create(ctx context.Context, asset *models.Asset) error {
	if m.createErr != nil {
		return m.createErr
	}
	asset.ID = uuid.New()
	asset.IsActive = true
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	m.assets = append(m.assets, asset)
	return nil
}

func (m *mockAssetRepo) GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*models.Asset, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, a := range m.assets {
		if a.OwnerID == ownerID && a.ID == assetID {
			return a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAssetRepo) List(ctx context.Context, ownerID uuid.UUID, filters models.AssetFilters) ([]*models.Asset, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Asset
	for _, a := range m.assets {
		if a.OwnerID != ownerID {
			continue
		}
		if filters.ActiveOnly && !a.IsActive {
			continue
		}
		if filters.CompletionStatus != "" && a.CompletionStatus != filters.CompletionStatus {
			continue
		}
		if filters.Technology != "" && a.TechnologyUsed != filters.Technology {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAssetRepo) Update(ctx context.Context, asset *models.Asset) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, a := range m.assets {
		if a.ID == asset.ID {
			m.assets[i] = asset
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockAssetRepo) Deactivate(ctx context.Context, ownerID, assetID uuid.UUID) error {
	for _, a := range m.assets {
		if a.OwnerID == ownerID && a.ID == assetID && a.IsActive {
			a.IsActive = false
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type mockNetAssetRepo struct {
	netAssets []*models.NetAsset
	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func newMockNetAssetRepo() *mockNetAssetRepo {
	return &mockNetAssetRepo{}
}

func (m *mockNetAssetRepo) Create(ctx context.Context, netAsset *models.NetAsset) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, n := range m.netAssets {
		if n.OwnerID == netAsset.OwnerID && n.TechnologyName == netAsset.TechnologyName && n.IsActive {
			return apperrors.ErrConflict
		}
	}
	netAsset.ID = uuid.New()
	netAsset.IsActive = true
	netAsset.CreatedAt = time.Now()
	netAsset.UpdatedAt = netAsset.CreatedAt
	m.netAssets = append(m.netAssets, netAsset)
	return nil
}

func (m *mockNetAssetRepo) GetByID(ctx context.Context, ownerID, netAssetID uuid.UUID) (*models.NetAsset, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, n := range m.netAssets {
		if n.OwnerID == ownerID && n.ID == netAssetID {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNetAssetRepo) GetActiveByTechnology(ctx context.Context, ownerID uuid.UUID, technology string) (*models.NetAsset, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, n := range m.netAssets {
		if n.OwnerID == ownerID && n.TechnologyName == technology && n.IsActive {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNetAssetRepo) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*models.NetAsset, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.NetAsset
	for _, n := range m.netAssets {
		if n.OwnerID == ownerID && n.IsActive {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNetAssetRepo) Update(ctx context.Context, netAsset *models.NetAsset) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, n := range m.netAssets {
		if n.ID == netAsset.ID {
			m.netAssets[i] = netAsset
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockNetAssetRepo) Deactivate(ctx context.Context, ownerID, netAssetID uuid.UUID) error {
	for _, n := range m.netAssets {
		if n.OwnerID == ownerID && n.ID == netAssetID && n.IsActive {
			n.IsActive = false
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type mockSkillDebtRepo struct {
	debts         []*models.SkillDebt
	createErr     error
	getErr        error
	listErr       error
	deactivateErr error
}

func newMockSkillDebtRepo() *mockSkillDebtRepo {
	return &mockSkillDebtRepo{}
}

func (m *mockSkillDebtRepo) Create(ctx context.Context, debt *models.SkillDebt) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, d := range m.debts {
		if d.OwnerID == debt.OwnerID && d.TechnologyName == debt.TechnologyName && d.IsActive {
			return apperrors.ErrConflict
		}
	}
	debt.ID = uuid.New()
	debt.IsActive = true
	debt.CreatedAt = time.Now()
	debt.UpdatedAt = debt.CreatedAt
	m.debts = append(m.debts, debt)
	return nil
}

func (m *mockSkillDebtRepo) GetByID(ctx context.Context, ownerID, debtID uuid.UUID) (*models.SkillDebt, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, d := range m.debts {
		if d.OwnerID == ownerID && d.ID == debtID {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockSkillDebtRepo) GetActiveByTechnology(ctx context.Context, ownerID uuid.UUID, technology string) (*models.SkillDebt, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, d := range m.debts {
		if d.OwnerID == ownerID && d.TechnologyName == technology && d.IsActive {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockSkillDebtRepo) ListActive(ctx context.Context, ownerID uuid.UUID) ([]*models.SkillDebt, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.SkillDebt
	for _, d := range m.debts {
		if d.OwnerID == ownerID && d.IsActive {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockSkillDebtRepo) Deactivate(ctx context.Context, ownerID, debtID uuid.UUID) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}
	for _, d := range m.debts {
		if d.OwnerID == ownerID && d.ID == debtID && d.IsActive {
			d.IsActive = false
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type mockCodeDebtRepo struct {
	debts     []*models.CodeDebt
	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func newMockCodeDebtRepo() *mockCodeDebtRepo {
	return &mockCodeDebtRepo{}
}

func (m *mockCodeDebtRepo) Create(ctx context.Context, debt *models.CodeDebt) error {
	if m.createErr != nil {
		return m.createErr
	}
	debt.ID = uuid.New()
	if debt.FirstDetected.IsZero() {
		debt.FirstDetected = time.Now()
	}
	debt.CreatedAt = time.Now()
	debt.UpdatedAt = debt.CreatedAt
	m.debts = append(m.debts, debt)
	return nil
}

func (m *mockCodeDebtRepo) GetByID(ctx context.Context, ownerID, debtID uuid.UUID) (*models.CodeDebt, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, d := range m.debts {
		if d.OwnerID == ownerID && d.ID == debtID {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCodeDebtRepo) List(ctx context.Context, ownerID uuid.UUID, filters models.CodeDebtFilters) ([]*models.CodeDebt, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.CodeDebt
	for _, d := range m.debts {
		if d.OwnerID != ownerID {
			continue
		}
		if filters.Status != "" && d.Status != filters.Status {
			continue
		}
		if filters.Severity != "" && d.Severity != filters.Severity {
			continue
		}
		if filters.DebtType != "" && d.DebtType != filters.DebtType {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

func (m *mockCodeDebtRepo) Update(ctx context.Context, debt *models.CodeDebt) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, d := range m.debts {
		if d.ID == debt.ID {
			m.debts[i] = debt
			return nil
		}
	}
	return apperrors.ErrNotFound
}
