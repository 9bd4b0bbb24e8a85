package predict

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/footballmoneyball/moneyball/internal/logger"
)

// Store is the sqlite-backed implementation of TeamSource, MatchSource and
// ResultSink, plus the query surface the HTTP layer and the scheduler need.
type Store struct{}

// Compile-time checks against the predictor's collaborator contracts
var (
	_ TeamSource  = (*Store)(nil)
	_ MatchSource = (*Store)(nil)
	_ ResultSink  = (*Store)(nil)
)

// NewStore opens the database at path and ensures all tables exist.
func NewStore(path string) (*Store, error) {
	if err := InitDatabase(path); err != nil {
		return nil, err
	}

	for _, model := range []Persistable{&Team{}, &MatchRecord{}, &PredictionResult{}} {
		if err := CreateTable(model); err != nil {
			return nil, fmt.Errorf("failed to create %s table: %w", model.TableName(), err)
		}
	}

	return &Store{}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return CloseDatabase()
}

/////////////////////////////////////////////////////////////////////////
////// Teams
/////////////////////////////////////////////////////////////////////////

// GetTeam looks a team up by id. Unknown ids yield ErrTeamNotFound.
func (s *Store) GetTeam(ctx context.Context, id string) (*Team, error) {
	team := &Team{}
	err := FindByPrimaryKey(team, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// SaveTeam inserts or updates a team.
func (s *Store) SaveTeam(team *Team) error {
	return Save(team)
}

// Teams returns all teams ordered by name.
func (s *Store) Teams() ([]*Team, error) {
	return FindWhere[*Team]("", "ORDER BY name")
}

/////////////////////////////////////////////////////////////////////////
////// Matches
/////////////////////////////////////////////////////////////////////////

// CompletedMatches returns a team's completed matches, newest first. The
// caller applies the form window; this returns the full completed history.
func (s *Store) CompletedMatches(ctx context.Context, teamID string) ([]*MatchRecord, error) {
	return FindWhere[*MatchRecord](
		"(home_id = ? OR away_id = ?) AND completed = 1",
		"ORDER BY match_date DESC",
		teamID, teamID)
}

// UpcomingMatches returns fixtures not yet completed, soonest first.
func (s *Store) UpcomingMatches() ([]*MatchRecord, error) {
	return FindWhere[*MatchRecord]("completed = 0", "ORDER BY match_date ASC")
}

// Matches returns all match records, newest first.
func (s *Store) Matches() ([]*MatchRecord, error) {
	return FindWhere[*MatchRecord]("", "ORDER BY match_date DESC")
}

// SaveMatch inserts or updates a match record.
func (s *Store) SaveMatch(match *MatchRecord) error {
	return Save(match)
}

/////////////////////////////////////////////////////////////////////////
////// Predictions
/////////////////////////////////////////////////////////////////////////

// SavePrediction persists a finished prediction.
func (s *Store) SavePrediction(ctx context.Context, result *PredictionResult) error {
	if err := Save(result); err != nil {
		return err
	}
	logger.Debug("Prediction saved", result.ID)
	return nil
}

// PredictionByID loads a stored prediction.
func (s *Store) PredictionByID(id string) (*PredictionResult, error) {
	result := &PredictionResult{}
	err := FindByPrimaryKey(result, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Predictions returns every stored prediction, newest first.
func (s *Store) Predictions() ([]*PredictionResult, error) {
	return FindWhere[*PredictionResult]("", "ORDER BY created_at DESC")
}

// RecentPredictions returns the latest 10 predictions, newest first.
func (s *Store) RecentPredictions() ([]*PredictionResult, error) {
	return FindWhere[*PredictionResult]("", "ORDER BY created_at DESC LIMIT 10")
}
