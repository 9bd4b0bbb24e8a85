package predict

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/footballmoneyball/moneyball/internal/logger"
)

// TeamSource looks a team up by id.
type TeamSource interface {
	GetTeam(ctx context.Context, id string) (*Team, error)
}

// MatchSource returns a team's completed matches ordered most-recent-first.
// The predictor applies the form window itself, so the source may return the
// team's full completed history.
type MatchSource interface {
	CompletedMatches(ctx context.Context, teamID string) ([]*MatchRecord, error)
}

// CommentaryProvider generates free-text analysis for a computed prediction.
// Implementations must respect context cancellation; the predictor bounds
// every call with a timeout.
type CommentaryProvider interface {
	MatchAnalysis(ctx context.Context, req AnalysisRequest) (string, error)
}

// ResultSink accepts a finished prediction for durable storage.
type ResultSink interface {
	SavePrediction(ctx context.Context, result *PredictionResult) error
}

// AnalysisRequest carries everything a commentary provider needs.
type AnalysisRequest struct {
	HomeTeam      *Team
	AwayTeam      *Team
	HomeForm      TeamForm
	AwayForm      TeamForm
	HomeXg        float64
	AwayXg        float64
	Probabilities OutcomeProbabilities
}

// Request identifies the fixture to predict.
type Request struct {
	HomeTeamID        string `json:"homeTeamId"`
	AwayTeamID        string `json:"awayTeamId"`
	IncludeAiAnalysis bool   `json:"includeAiAnalysis"`
}

// Predictor sequences form aggregation, xG estimation and the outcome
// distribution for one fixture. The numeric pipeline is pure and
// side-effect-free, so a single Predictor is safe for concurrent use; only
// the injected collaborators perform I/O.
type Predictor struct {
	teams      TeamSource
	matches    MatchSource
	commentary CommentaryProvider // optional
	sink       ResultSink         // optional
}

func NewPredictor(teams TeamSource, matches MatchSource, commentary CommentaryProvider, sink ResultSink) *Predictor {
	return &Predictor{
		teams:      teams,
		matches:    matches,
		commentary: commentary,
		sink:       sink,
	}
}

// Predict produces the full prediction for a fixture.
//
// An unknown team id aborts the request before any numeric work starts. A
// commentary failure degrades to a fixed fallback string and never
// invalidates the computed probabilities. A storage failure is surfaced as a
// warning, not an error: the caller still receives the result.
func (p *Predictor) Predict(ctx context.Context, req Request) (*PredictionResult, error) {
	homeTeam, err := p.teams.GetTeam(ctx, req.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("home team %s: %w", req.HomeTeamID, err)
	}
	awayTeam, err := p.teams.GetTeam(ctx, req.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("away team %s: %w", req.AwayTeamID, err)
	}

	logger.Info("Predicting match:", homeTeam.Name, "vs", awayTeam.Name)

	homeMatches, err := p.matches.CompletedMatches(ctx, homeTeam.ID)
	if err != nil {
		return nil, fmt.Errorf("match history for %s: %w", homeTeam.ID, err)
	}
	awayMatches, err := p.matches.CompletedMatches(ctx, awayTeam.ID)
	if err != nil {
		return nil, fmt.Errorf("match history for %s: %w", awayTeam.ID, err)
	}

	homeForm := ComputeForm(homeTeam, homeMatches)
	awayForm := ComputeForm(awayTeam, awayMatches)

	homeXg := EstimateGoals(homeForm, awayForm, true)
	awayXg := EstimateGoals(awayForm, homeForm, false)

	logger.Debug("Predicted xG:", homeTeam.Name, homeXg, awayTeam.Name, awayXg)

	probs, err := ComputeProbabilities(homeXg, awayXg)
	if err != nil {
		return nil, err
	}

	confidence := ClassifyConfidence(probs)

	result := &PredictionResult{
		ID:                 uuid.NewString(),
		HomeTeamID:         homeTeam.ID,
		AwayTeamID:         awayTeam.ID,
		HomeTeamName:       homeTeam.Name,
		AwayTeamName:       awayTeam.Name,
		HomeWinProbability: probs.HomeWin,
		DrawProbability:    probs.Draw,
		AwayWinProbability: probs.AwayWin,
		PredictedHomeXg:    homeXg,
		PredictedAwayXg:    awayXg,
		Confidence:         confidence,
	}

	if req.IncludeAiAnalysis && p.commentary != nil {
		result.AiAnalysis = p.analysisOrFallback(ctx, AnalysisRequest{
			HomeTeam:      homeTeam,
			AwayTeam:      awayTeam,
			HomeForm:      homeForm,
			AwayForm:      awayForm,
			HomeXg:        homeXg,
			AwayXg:        awayXg,
			Probabilities: probs,
		})
	}

	if p.sink != nil {
		if err := p.sink.SavePrediction(ctx, result); err != nil {
			logger.Warn("Failed to persist prediction", result.ID, err)
		}
	}

	logger.Info("Probabilities:", probs.HomeWin, probs.Draw, probs.AwayWin, string(confidence))

	return result, nil
}

// analysisOrFallback runs the commentary collaborator under its own timeout.
// The numeric result is already final by the time this is called, so any
// failure here only affects the text.
func (p *Predictor) analysisOrFallback(ctx context.Context, req AnalysisRequest) string {
	ctx, cancel := context.WithTimeout(ctx, Config.CommentaryTimeout)
	defer cancel()

	text, err := p.commentary.MatchAnalysis(ctx, req)
	if err != nil {
		logger.Warn("Commentary unavailable, using fallback", err)
		return Config.CommentaryFallback
	}
	return text
}
