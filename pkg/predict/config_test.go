package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModelConfigIsValid(t *testing.T) {
	assert.NoError(t, ValidateConfig(DefaultModelConfig()))
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*ModelConfig)
	}{
		{"zero form window", func(c *ModelConfig) { c.FormWindowSize = 0 }},
		{"zero league average", func(c *ModelConfig) { c.LeagueAvgGoalsConceded = 0 }},
		{"zero form divisor", func(c *ModelConfig) { c.FormPointsDivisor = 0 }},
		{"inverted xg clamp", func(c *ModelConfig) { c.MinExpectedGoals = 4.0 }},
		{"negative xg floor", func(c *ModelConfig) { c.MinExpectedGoals = -0.5 }},
		{"scoreline bound too small", func(c *ModelConfig) { c.MaxScorelineGoals = 2 }},
		{"inverted confidence thresholds", func(c *ModelConfig) { c.MediumConfidenceThreshold = 0.7 }},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultModelConfig()
			tc.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}

func TestUpdateConfigRejectsInvalidAndKeepsCurrent(t *testing.T) {
	current := Config

	bad := DefaultModelConfig()
	bad.FormWindowSize = -1
	require.Error(t, UpdateConfig(bad))
	assert.Same(t, current, Config)

	good := DefaultModelConfig()
	good.FormWindowSize = 5
	require.NoError(t, UpdateConfig(good))
	assert.Equal(t, 5, Config.FormWindowSize)

	t.Cleanup(func() { Config = current })
}
