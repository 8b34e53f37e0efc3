// seed-demo-data populates a ledger with a demo owner's assets, mastery
// records, skill debts and code debts, then prints the derived summary and
// top recommendations.
//
// Usage: go run ./scripts/seed-demo-data [owner-id]
//
// When no owner ID is given a random one is generated and printed.
//
// Database connection: Uses standard PG* environment variables (and
// config.yaml when present). Migrations are applied before seeding.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stackwise-ai/ledger-engine/pkg/config"
	"github.com/stackwise-ai/ledger-engine/pkg/database"
	"github.com/stackwise-ai/ledger-engine/pkg/logging"
	"github.com/stackwise-ai/ledger-engine/pkg/models"
	"github.com/stackwise-ai/ledger-engine/pkg/repositories"
	"github.com/stackwise-ai/ledger-engine/pkg/services"
)

func main() {
	flag.Parse()

	ownerID := uuid.New()
	if args := flag.Args(); len(args) > 0 {
		parsed, err := uuid.Parse(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid owner ID: %v\n", err)
			os.Exit(1)
		}
		ownerID = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	connStr := cfg.Database.ConnectionString()
	logger.Info("Connecting to database",
		zap.String("url", logging.SanitizeConnectionString(connStr)))

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            connStr,
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	sqlDB, err := database.OpenForMigrations(connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sql connection: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		sqlDB.Close()
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}
	sqlDB.Close()

	assets := repositories.NewAssetRepository(db)
	netAssets := repositories.NewNetAssetRepository(db)
	skillDebts := repositories.NewSkillDebtRepository(db)
	codeDebts := repositories.NewCodeDebtRepository(db)

	aggregator := services.NewAggregator(assets, netAssets, skillDebts, codeDebts, &cfg.Scoring, logger)
	ranker := services.NewRecommendationRanker(skillDebts, codeDebts, &cfg.Scoring, cfg.Recommendations.DefaultLimit, logger)
	classifier := services.NewLeverageClassifier(cfg.LeverageBands, cfg.LeverageNoneRationale)
	ledger := services.NewLedgerService(assets, netAssets, skillDebts, codeDebts,
		aggregator, ranker, classifier, &cfg.Scoring, logger)

	if err := seed(ctx, ledger, ownerID); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed demo data: %v\n", err)
		os.Exit(1)
	}

	summary, err := ledger.GetSummary(ctx, ownerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compute summary: %v\n", err)
		os.Exit(1)
	}

	recommendations, err := ledger.GetRecommendations(ctx, ownerID, 5)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compute recommendations: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded demo ledger for owner %s\n\n", ownerID)
	fmt.Printf("Assets:       %d active, total value %.2f\n", summary.ActiveAssets, summary.AssetTotal)
	fmt.Printf("Net assets:   %d active, total mastery %.2f\n", summary.ActiveNetAssets, summary.NetAssetTotal)
	fmt.Printf("Skill debts:  %d active, total importance %.2f\n", summary.ActiveSkillDebts, summary.SkillDebtTotal)
	fmt.Printf("Code debts:   %d total, %d open, resolution rate %.1f%%\n",
		summary.CodeDebt.TotalCount, summary.CodeDebt.OpenCount, summary.CodeDebt.ResolutionRate)
	fmt.Printf("Leverage:     %.3f (%s)\n  %s\n\n", summary.Leverage.Ratio, summary.Leverage.Band, summary.Leverage.Rationale)

	fmt.Println("Top recommendations:")
	for i, rec := range recommendations {
		fmt.Printf("  %d. [%s] %s\n", i+1, rec.Kind, rec.Reason)
	}
}

func seed(ctx context.Context, ledger services.LedgerService, ownerID uuid.UUID) error {
	assetInputs := []*models.AssetInput{
		{
			OwnerID:           ownerID,
			ProjectName:       "ingest-pipeline",
			TechnologyUsed:    "Go",
			Category:          "backend",
			CompletionStatus:  models.AssetStatusCompleted,
			AIAssistanceLevel: 30,
			Notes:             "event ingestion service, deployed",
		},
		{
			OwnerID:           ownerID,
			ProjectName:       "metrics-dashboard",
			TechnologyUsed:    "TypeScript",
			Category:          "frontend",
			CompletionStatus:  models.AssetStatusInProgress,
			AIAssistanceLevel: 80,
		},
		{
			OwnerID:           ownerID,
			ProjectName:       "schema-migrator",
			TechnologyUsed:    "PostgreSQL",
			Category:          "tooling",
			CompletionStatus:  models.AssetStatusCompleted,
			AIAssistanceLevel: 10,
		},
	}
	for _, in := range assetInputs {
		if _, err := ledger.RecordAsset(ctx, in); err != nil {
			return fmt.Errorf("record asset %q: %w", in.ProjectName, err)
		}
	}

	netAssetInputs := []*models.NetAssetInput{
		{
			OwnerID:          ownerID,
			TechnologyName:   "Go",
			Category:         "backend",
			ProficiencyLevel: models.ProficiencyAdvanced,
			ProficiencyScore: 70,
			ConfidenceLevel:  0.8,
		},
		{
			OwnerID:          ownerID,
			TechnologyName:   "PostgreSQL",
			Category:         "database",
			ProficiencyLevel: models.ProficiencyIntermediate,
			ProficiencyScore: 55,
			ConfidenceLevel:  0.6,
		},
	}
	for _, in := range netAssetInputs {
		if _, err := ledger.RecordNetAsset(ctx, in); err != nil {
			return fmt.Errorf("record net asset %q: %w", in.TechnologyName, err)
		}
	}

	skillDebtInputs := []*models.SkillDebtInput{
		{
			OwnerID:                ownerID,
			TechnologyName:         "TypeScript",
			Category:               "frontend",
			UrgencyLevel:           models.UrgencyHigh,
			TargetProficiencyLevel: models.ProficiencyIntermediate,
			EstimatedLearningHours: 40,
		},
		{
			OwnerID:                ownerID,
			TechnologyName:         "Kubernetes",
			Category:               "infrastructure",
			UrgencyLevel:           models.UrgencyMedium,
			TargetProficiencyLevel: models.ProficiencyBeginner,
			EstimatedLearningHours: 20,
		},
	}
	for _, in := range skillDebtInputs {
		if _, err := ledger.RecordSkillDebt(ctx, in); err != nil {
			return fmt.Errorf("record skill debt %q: %w", in.TechnologyName, err)
		}
	}

	codeDebtInputs := []*models.CodeDebtInput{
		{
			OwnerID:         ownerID,
			Title:           "No retry on ingest publish",
			Description:     "Publish failures drop events silently",
			DebtType:        "reliability",
			Category:        "backend",
			FilePath:        "internal/ingest/publisher.go",
			LineStart:       112,
			LineEnd:         140,
			Severity:        models.SeverityHigh,
			Priority:        1,
			EffortEstimate:  180,
			DetectionMethod: "code_review",
		},
		{
			OwnerID:         ownerID,
			Title:           "Dashboard duplicates date formatting",
			DebtType:        "duplication",
			Category:        "frontend",
			FilePath:        "web/src/lib/dates.ts",
			Severity:        models.SeverityLow,
			Priority:        4,
			EffortEstimate:  45,
			DetectionMethod: "manual",
		},
	}
	var firstCodeDebt *models.CodeDebt
	for _, in := range codeDebtInputs {
		debt, err := ledger.RecordCodeDebt(ctx, in)
		if err != nil {
			return fmt.Errorf("record code debt %q: %w", in.Title, err)
		}
		if firstCodeDebt == nil {
			firstCodeDebt = debt
		}
	}

	// Walk one debt through the lifecycle so the summary shows a non-zero
	// resolution rate.
	if _, err := ledger.UpdateCodeDebtStatus(ctx, ownerID, firstCodeDebt.ID, models.CodeDebtStatusInProgress); err != nil {
		return fmt.Errorf("start code debt: %w", err)
	}
	if _, err := ledger.ResolveCodeDebt(ctx, ownerID, firstCodeDebt.ID, "added bounded retry with dead-letter fallback"); err != nil {
		return fmt.Errorf("resolve code debt: %w", err)
	}

	return nil
}
