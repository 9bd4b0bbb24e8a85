package predict

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The database handle is a package-level singleton, so every storage scenario
// runs inside one test against one temporary database.
func TestStore(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()

	t.Run("team roundtrip", func(t *testing.T) {
		team := &Team{
			ID:            "liverpool",
			Name:          "Liverpool",
			League:        "Premier League",
			GoalsScored:   45,
			GoalsConceded: 20,
			Wins:          14,
			AverageXg:     2.05,
			AverageXa:     -1,
		}
		require.NoError(t, store.SaveTeam(team))

		loaded, err := store.GetTeam(ctx, "liverpool")
		require.NoError(t, err)
		assert.Equal(t, "Liverpool", loaded.Name)
		assert.Equal(t, 45, loaded.GoalsScored)
		assert.InDelta(t, 2.05, loaded.AverageXg, 1e-9)
		assert.True(t, loaded.HasAverageXg())
		assert.False(t, loaded.UpdatedAt.IsZero())

		// Saving again with the same id updates rather than duplicates
		team.Wins = 15
		require.NoError(t, store.SaveTeam(team))

		teams, err := store.Teams()
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, 15, teams[0].Wins)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := store.GetTeam(ctx, "no-such-team")
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("match queries", func(t *testing.T) {
		base := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
		matches := []*MatchRecord{
			{
				ID: "m1", HomeID: "liverpool", AwayID: "everton",
				HomeScore: 3, AwayScore: 1, HomeXg: 2.6, AwayXg: 0.9,
				MatchDate: base, Completed: true,
			},
			{
				ID: "m2", HomeID: "everton", AwayID: "liverpool",
				HomeScore: 0, AwayScore: 2, HomeXg: 0.7, AwayXg: 1.8,
				MatchDate: base.AddDate(0, 0, 7), Completed: true,
			},
			{
				ID: "m3", HomeID: "liverpool", AwayID: "chelsea",
				HomeScore: -1, AwayScore: -1, HomeXg: -1, AwayXg: -1,
				MatchDate: base.AddDate(0, 0, 30),
			},
		}
		for _, m := range matches {
			require.NoError(t, store.SaveMatch(m))
		}

		completed, err := store.CompletedMatches(ctx, "liverpool")
		require.NoError(t, err)
		require.Len(t, completed, 2)
		assert.Equal(t, "m2", completed[0].ID, "newest completed match first")
		assert.True(t, completed[0].HasResult())

		upcoming, err := store.UpcomingMatches()
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, "m3", upcoming[0].ID)
		assert.False(t, upcoming[0].HasResult())
		assert.Equal(t, -1, upcoming[0].HomeScore)

		all, err := store.Matches()
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("prediction roundtrip", func(t *testing.T) {
		result := &PredictionResult{
			HomeTeamID:         "liverpool",
			AwayTeamID:         "everton",
			HomeTeamName:       "Liverpool",
			AwayTeamName:       "Everton",
			HomeWinProbability: 0.62,
			DrawProbability:    0.21,
			AwayWinProbability: 0.17,
			PredictedHomeXg:    2.4,
			PredictedAwayXg:    0.9,
			Confidence:         ConfidenceHigh,
			AiAnalysis:         "Liverpool strongly favored at home.",
		}
		require.NoError(t, store.SavePrediction(ctx, result))
		assert.NotEmpty(t, result.ID, "save assigns an id")

		loaded, err := store.PredictionByID(result.ID)
		require.NoError(t, err)
		assert.Equal(t, result.HomeTeamName, loaded.HomeTeamName)
		assert.Equal(t, ConfidenceHigh, loaded.Confidence)
		assert.InDelta(t, 0.62, loaded.Probabilities().HomeWin, 1e-9)

		recent, err := store.RecentPredictions()
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, result.ID, recent[0].ID)
	})
}
