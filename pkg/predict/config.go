package predict

import (
	"fmt"
	"time"
)

// ModelConfig contains every tunable parameter that influences prediction
// outcomes. These values encode empirical calibration choices, so they are
// declared once here rather than re-derived anywhere in the model.
type ModelConfig struct {
	// === FORM AGGREGATION ===

	FormWindowSize int // How many recent completed matches feed a team's form (default: 10)

	// Fallback values for teams with no completed history. A new team is a
	// normal condition, not an error.
	DefaultAvgXg            float64 // Default attacking xG per match (default: 1.5)
	DefaultAvgGoalsScored   float64 // Default goals scored per match (default: 1.5)
	DefaultAvgGoalsConceded float64 // Default goals conceded per match (default: 1.5)

	// === EXPECTED GOALS MODEL ===

	LeagueAvgGoalsConceded float64 // Baseline defense the opponent is scaled against (default: 1.5)
	AverageFormPoints      float64 // Points total of an exactly .500 record over the window (default: 15.0)
	FormPointsDivisor      float64 // Spread of the form multiplier around 1.0 (default: 30.0)
	HomeAdvantage          float64 // Additive home bonus in goals (default: 0.35)
	MinExpectedGoals       float64 // Lower clamp on a side's predicted goals (default: 0.5)
	MaxExpectedGoals       float64 // Upper clamp on a side's predicted goals (default: 3.5)

	// === OUTCOME DISTRIBUTION ===

	// Scorelines are enumerated on the closed grid [0,MaxScorelineGoals] per
	// side; the tiny mass above the bound is dropped and the truncated
	// distribution renormalized. Changing the bound changes every downstream
	// probability, so it stays at 5.
	MaxScorelineGoals int

	// === CONFIDENCE CLASSIFICATION ===

	HighConfidenceThreshold   float64 // maxProb strictly above this is HIGH (default: 0.60)
	MediumConfidenceThreshold float64 // maxProb strictly above this is MEDIUM (default: 0.45)

	// === COMMENTARY COLLABORATOR ===

	CommentaryTimeout  time.Duration // Bound on the external analysis call (default: 15s)
	CommentaryFallback string        // Substituted when the collaborator fails or times out
}

// DefaultModelConfig returns the standard calibration.
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		FormWindowSize: 10,

		DefaultAvgXg:            1.5,
		DefaultAvgGoalsScored:   1.5,
		DefaultAvgGoalsConceded: 1.5,

		LeagueAvgGoalsConceded: 1.5,
		AverageFormPoints:      15.0,
		FormPointsDivisor:      30.0,
		HomeAdvantage:          0.35,
		MinExpectedGoals:       0.5,
		MaxExpectedGoals:       3.5,

		MaxScorelineGoals: 5,

		HighConfidenceThreshold:   0.60,
		MediumConfidenceThreshold: 0.45,

		CommentaryTimeout:  15 * time.Second,
		CommentaryFallback: "AI analysis unavailable at this time.",
	}
}

// Global configuration instance
var Config *ModelConfig

func init() {
	Config = DefaultModelConfig()
}

// UpdateConfig replaces the global configuration, validating it first.
func UpdateConfig(newConfig *ModelConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// ValidateConfig ensures all configuration values are within sane ranges.
func ValidateConfig(config *ModelConfig) error {
	if config.FormWindowSize < 1 {
		return fmt.Errorf("FormWindowSize must be at least 1, got: %d", config.FormWindowSize)
	}

	if config.LeagueAvgGoalsConceded <= 0 {
		return fmt.Errorf("LeagueAvgGoalsConceded must be positive, got: %f", config.LeagueAvgGoalsConceded)
	}

	if config.FormPointsDivisor <= 0 {
		return fmt.Errorf("FormPointsDivisor must be positive, got: %f", config.FormPointsDivisor)
	}

	if config.MinExpectedGoals < 0 || config.MinExpectedGoals >= config.MaxExpectedGoals {
		return fmt.Errorf("expected goals clamp is inverted: [%f, %f]", config.MinExpectedGoals, config.MaxExpectedGoals)
	}

	if config.MaxScorelineGoals < 3 {
		return fmt.Errorf("MaxScorelineGoals should be at least 3 to capture realistic scores, got: %d", config.MaxScorelineGoals)
	}

	if config.MediumConfidenceThreshold >= config.HighConfidenceThreshold {
		return fmt.Errorf("confidence thresholds are inverted: %f >= %f",
			config.MediumConfidenceThreshold, config.HighConfidenceThreshold)
	}

	return nil
}
