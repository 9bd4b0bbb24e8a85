// Package scheduler refreshes predictions for upcoming fixtures on a cron
// schedule, so stored predictions track the latest form data without a user
// request.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/footballmoneyball/moneyball/internal/logger"
	"github.com/footballmoneyball/moneyball/pkg/predict"
)

type Scheduler struct {
	store     *predict.Store
	predictor *predict.Predictor
	cron      *cron.Cron
}

func New(store *predict.Store, predictor *predict.Predictor) *Scheduler {
	return &Scheduler{
		store:     store,
		predictor: predictor,
		cron:      cron.New(),
	}
}

// Start registers the refresh job under the given cron expression and starts
// the scheduler in the background.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RefreshUpcoming(ctx); err != nil {
			logger.Error("Scheduled prediction refresh failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule prediction refresh: %w", err)
	}

	s.cron.Start()
	logger.Info("Prediction refresh scheduled", spec)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RefreshUpcoming recomputes and stores a prediction for every fixture that
// has not been played yet. Commentary is skipped: the scheduled path exists
// to keep the numbers fresh, and a failed fixture never blocks the rest.
func (s *Scheduler) RefreshUpcoming(ctx context.Context) error {
	upcoming, err := s.store.UpcomingMatches()
	if err != nil {
		return fmt.Errorf("failed to list upcoming fixtures: %w", err)
	}

	if len(upcoming) == 0 {
		logger.Debug("No upcoming fixtures to refresh")
		return nil
	}

	logger.Info("Refreshing predictions for upcoming fixtures", len(upcoming))

	refreshed := 0
	for _, match := range upcoming {
		_, err := s.predictor.Predict(ctx, predict.Request{
			HomeTeamID: match.HomeID,
			AwayTeamID: match.AwayID,
		})
		if err != nil {
			logger.Warn("Failed to refresh prediction", match.ID, err)
			continue
		}
		refreshed++
	}

	logger.Info("Prediction refresh complete", refreshed, "of", len(upcoming))
	return nil
}
