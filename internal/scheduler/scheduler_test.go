package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footballmoneyball/moneyball/pkg/predict"
)

func TestRefreshUpcoming(t *testing.T) {
	store, err := predict.NewStore(filepath.Join(t.TempDir(), "scheduler_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.SaveTeam(&predict.Team{
		ID: "leeds", Name: "Leeds", League: "Premier League", AverageXg: 1.6,
	}))
	require.NoError(t, store.SaveTeam(&predict.Team{
		ID: "burnley", Name: "Burnley", League: "Premier League", AverageXg: 1.1,
	}))

	kickoff := time.Date(2025, 5, 17, 15, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveMatch(&predict.MatchRecord{
		ID: "fixture-1", HomeID: "leeds", AwayID: "burnley",
		HomeScore: -1, AwayScore: -1, HomeXg: -1, AwayXg: -1,
		MatchDate: kickoff,
	}))
	// Fixtures against unknown teams are skipped, not fatal
	require.NoError(t, store.SaveMatch(&predict.MatchRecord{
		ID: "fixture-2", HomeID: "leeds", AwayID: "folded-club",
		HomeScore: -1, AwayScore: -1, HomeXg: -1, AwayXg: -1,
		MatchDate: kickoff.AddDate(0, 0, 7),
	}))

	sched := New(store, predict.NewPredictor(store, store, nil, store))

	require.NoError(t, sched.RefreshUpcoming(context.Background()))

	predictions, err := store.Predictions()
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "leeds", predictions[0].HomeTeamID)
	assert.Equal(t, "burnley", predictions[0].AwayTeamID)
	assert.Empty(t, predictions[0].AiAnalysis, "scheduled refresh skips commentary")
	assert.InDelta(t, 1.0,
		predictions[0].HomeWinProbability+predictions[0].DrawProbability+predictions[0].AwayWinProbability,
		1e-9)
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	sched := New(nil, nil)
	assert.Error(t, sched.Start(context.Background(), "not a cron spec"))
}
