package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/stackwise-ai/ledger-engine/pkg/models"
)

// Config holds all configuration for the ledger engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. Secrets
// (the database password) must only come from environment variables.
//
// Every scoring constant and leverage band boundary lives here so they can
// be tuned without code changes.
type Config struct {
	Env string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Scoring constants for the pure scoring functions
	Scoring ScoringConfig `yaml:"scoring"`

	// Leverage band table. Loaded from LeverageBandsFile if set, otherwise
	// defaults apply. A zero ratio is always classified as the "none" band
	// with LeverageNoneRationale, before the table is consulted.
	LeverageBandsFile     string         `yaml:"leverage_bands_file" env:"LEVERAGE_BANDS_FILE" env-default:""`
	LeverageNoneRationale string         `yaml:"leverage_none_rationale" env:"LEVERAGE_NONE_RATIONALE" env-default:"none: no outstanding learning debt is leveraged against demonstrated mastery"`
	LeverageBands         []LeverageBand `yaml:"-"`

	// Recommendation ranking defaults
	Recommendations RecommendationConfig `yaml:"recommendations"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"ledger"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"ledger_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// ScoringConfig holds the tunable constants of the scoring functions.
// Defaults follow the documented formulas; none of the exact values are
// load-bearing design.
type ScoringConfig struct {
	// Asset value: base value scaled by completion status, then discounted
	// by AI assistance share.
	AssetBaseValue         float64 `yaml:"asset_base_value" env:"SCORE_ASSET_BASE_VALUE" env-default:"10"`
	AIDiscountFactor       float64 `yaml:"ai_discount_factor" env:"SCORE_AI_DISCOUNT_FACTOR" env-default:"0.5"`
	StatusWeightNotStarted float64 `yaml:"status_weight_not_started" env:"SCORE_STATUS_WEIGHT_NOT_STARTED" env-default:"0"`
	StatusWeightInProgress float64 `yaml:"status_weight_in_progress" env:"SCORE_STATUS_WEIGHT_IN_PROGRESS" env-default:"0.4"`
	StatusWeightCompleted  float64 `yaml:"status_weight_completed" env:"SCORE_STATUS_WEIGHT_COMPLETED" env-default:"1.0"`

	// Mastery: each proficiency level owns a fixed score window so a
	// saturated lower level can never undercut a higher one.
	ProficiencyCeilingBeginner     float64 `yaml:"proficiency_ceiling_beginner" env:"SCORE_PROFICIENCY_CEILING_BEGINNER" env-default:"25"`
	ProficiencyCeilingIntermediate float64 `yaml:"proficiency_ceiling_intermediate" env:"SCORE_PROFICIENCY_CEILING_INTERMEDIATE" env-default:"50"`
	ProficiencyCeilingAdvanced     float64 `yaml:"proficiency_ceiling_advanced" env:"SCORE_PROFICIENCY_CEILING_ADVANCED" env-default:"75"`
	ProficiencyCeilingExpert       float64 `yaml:"proficiency_ceiling_expert" env:"SCORE_PROFICIENCY_CEILING_EXPERT" env-default:"100"`

	// Importance: urgency ordinal weights applied to a concave function of
	// the estimated learning hours.
	UrgencyWeightLow      float64 `yaml:"urgency_weight_low" env:"SCORE_URGENCY_WEIGHT_LOW" env-default:"1"`
	UrgencyWeightMedium   float64 `yaml:"urgency_weight_medium" env:"SCORE_URGENCY_WEIGHT_MEDIUM" env-default:"2"`
	UrgencyWeightHigh     float64 `yaml:"urgency_weight_high" env:"SCORE_URGENCY_WEIGHT_HIGH" env-default:"3"`
	UrgencyWeightCritical float64 `yaml:"urgency_weight_critical" env:"SCORE_URGENCY_WEIGHT_CRITICAL" env-default:"4"`

	// Impact: severity weights applied to a function of the effort
	// estimate. Larger effort at equal severity raises impact.
	SeverityWeightLow      float64 `yaml:"severity_weight_low" env:"SCORE_SEVERITY_WEIGHT_LOW" env-default:"2.5"`
	SeverityWeightMedium   float64 `yaml:"severity_weight_medium" env:"SCORE_SEVERITY_WEIGHT_MEDIUM" env-default:"5"`
	SeverityWeightHigh     float64 `yaml:"severity_weight_high" env:"SCORE_SEVERITY_WEIGHT_HIGH" env-default:"7.5"`
	SeverityWeightCritical float64 `yaml:"severity_weight_critical" env:"SCORE_SEVERITY_WEIGHT_CRITICAL" env-default:"10"`
}

// StatusWeight returns the completion status weight for asset valuation.
func (c *ScoringConfig) StatusWeight(status string) float64 {
	switch status {
	case models.AssetStatusNotStarted:
		return c.StatusWeightNotStarted
	case models.AssetStatusInProgress:
		return c.StatusWeightInProgress
	case models.AssetStatusCompleted:
		return c.StatusWeightCompleted
	}
	return 0
}

// ProficiencyWindow returns the [floor, ceiling] score window of a
// proficiency level. Each level's floor is the previous level's ceiling.
func (c *ScoringConfig) ProficiencyWindow(level string) (floor, ceiling float64) {
	switch level {
	case models.ProficiencyBeginner:
		return 0, c.ProficiencyCeilingBeginner
	case models.ProficiencyIntermediate:
		return c.ProficiencyCeilingBeginner, c.ProficiencyCeilingIntermediate
	case models.ProficiencyAdvanced:
		return c.ProficiencyCeilingIntermediate, c.ProficiencyCeilingAdvanced
	case models.ProficiencyExpert:
		return c.ProficiencyCeilingAdvanced, c.ProficiencyCeilingExpert
	}
	return 0, 0
}

// UrgencyWeight returns the weight for a skill debt urgency level.
func (c *ScoringConfig) UrgencyWeight(urgency string) float64 {
	switch urgency {
	case models.UrgencyLow:
		return c.UrgencyWeightLow
	case models.UrgencyMedium:
		return c.UrgencyWeightMedium
	case models.UrgencyHigh:
		return c.UrgencyWeightHigh
	case models.UrgencyCritical:
		return c.UrgencyWeightCritical
	}
	return 0
}

// SeverityWeight returns the weight for a code debt severity level.
func (c *ScoringConfig) SeverityWeight(severity string) float64 {
	switch severity {
	case models.SeverityLow:
		return c.SeverityWeightLow
	case models.SeverityMedium:
		return c.SeverityWeightMedium
	case models.SeverityHigh:
		return c.SeverityWeightHigh
	case models.SeverityCritical:
		return c.SeverityWeightCritical
	}
	return 0
}

// RecommendationConfig holds recommendation ranking defaults.
type RecommendationConfig struct {
	// DefaultLimit is the number of items returned when the caller does not
	// supply a limit.
	DefaultLimit int `yaml:"default_limit" env:"RECOMMENDATION_DEFAULT_LIMIT" env-default:"10"`
}

// LeverageBand is one row of the leverage classification table. A ratio
// falls into the first band whose UpperBound it does not exceed; a zero
// UpperBound marks the open-ended last band.
type LeverageBand struct {
	Band       string  `yaml:"band"`
	UpperBound float64 `yaml:"upper_bound"`
	Rationale  string  `yaml:"rationale"`
}

// DefaultLeverageBands is the band table used when no override file is
// configured. The zero ratio is classified as "none" before the table is
// consulted.
func DefaultLeverageBands() []LeverageBand {
	return []LeverageBand{
		{Band: models.LeverageBandLow, UpperBound: 0.3, Rationale: "low: learning debt is well covered by demonstrated mastery"},
		{Band: models.LeverageBandModerate, UpperBound: 0.7, Rationale: "moderate: learning debt is accumulating; schedule regular study time"},
		{Band: models.LeverageBandHigh, UpperBound: 1.2, Rationale: "high: learning debt approaches demonstrated mastery; prioritize closing gaps"},
		{Band: models.LeverageBandCritical, UpperBound: 0, Rationale: "critical: urgently reduce outstanding learning debt"},
	}
}

// Load reads configuration from config.yaml (if present) with environment
// variable overrides, then resolves the leverage band table.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.loadLeverageBands(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadLeverageBands resolves the band table. Band rows are a slice of
// structs, which flat environment variables cannot express, so overrides
// come from a dedicated YAML file.
func (c *Config) loadLeverageBands() error {
	if c.LeverageBandsFile == "" {
		c.LeverageBands = DefaultLeverageBands()
		return nil
	}

	data, err := os.ReadFile(c.LeverageBandsFile)
	if err != nil {
		return fmt.Errorf("failed to read leverage bands file: %w", err)
	}

	var bands []LeverageBand
	if err := yaml.Unmarshal(data, &bands); err != nil {
		return fmt.Errorf("failed to parse leverage bands file: %w", err)
	}
	if len(bands) == 0 {
		return fmt.Errorf("leverage bands file %s defines no bands", c.LeverageBandsFile)
	}

	c.LeverageBands = bands
	return nil
}

func (c *Config) validate() error {
	if c.Scoring.AIDiscountFactor < 0 || c.Scoring.AIDiscountFactor > 1 {
		return fmt.Errorf("ai_discount_factor must be in [0,1], got %v", c.Scoring.AIDiscountFactor)
	}
	if c.Recommendations.DefaultLimit <= 0 {
		return fmt.Errorf("recommendations.default_limit must be positive, got %d", c.Recommendations.DefaultLimit)
	}
	for i := 1; i < len(c.LeverageBands); i++ {
		prev, cur := c.LeverageBands[i-1], c.LeverageBands[i]
		if prev.UpperBound == 0 {
			return fmt.Errorf("leverage band %q is open-ended but not last", prev.Band)
		}
		if cur.UpperBound != 0 && cur.UpperBound <= prev.UpperBound {
			return fmt.Errorf("leverage band %q upper bound %v does not increase", cur.Band, cur.UpperBound)
		}
	}
	return nil
}
