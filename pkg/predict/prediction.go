package predict

import (
	"time"

	"github.com/google/uuid"
)

// Compile-time check to ensure PredictionResult implements Persistable
var _ Persistable = (*PredictionResult)(nil)

// PredictionResult is the complete outcome of one prediction request.
// Immutable after the orchestrator assembles it; ownership transfers to the
// caller and the result sink.
type PredictionResult struct {
	ID string `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`

	HomeTeamID   string `json:"homeTeamId" column:"home_team_id" dbtype:"TEXT NOT NULL" index:"true"`
	AwayTeamID   string `json:"awayTeamId" column:"away_team_id" dbtype:"TEXT NOT NULL" index:"true"`
	HomeTeamName string `json:"homeTeamName" column:"home_team_name" dbtype:"TEXT"`
	AwayTeamName string `json:"awayTeamName" column:"away_team_name" dbtype:"TEXT"`

	// Probabilities stored as decimals: 0.523 = 52.3%
	HomeWinProbability float64 `json:"homeWinProbability" column:"home_win_prob" dbtype:"REAL"`
	DrawProbability    float64 `json:"drawProbability" column:"draw_prob" dbtype:"REAL"`
	AwayWinProbability float64 `json:"awayWinProbability" column:"away_win_prob" dbtype:"REAL"`

	PredictedHomeXg float64 `json:"predictedHomeXg" column:"predicted_home_xg" dbtype:"REAL"`
	PredictedAwayXg float64 `json:"predictedAwayXg" column:"predicted_away_xg" dbtype:"REAL"`

	Confidence ConfidenceLevel `json:"confidence" column:"confidence" dbtype:"TEXT"`

	// Free-text analysis from the commentary collaborator, or its fallback
	AiAnalysis string `json:"aiAnalysis,omitempty" column:"ai_analysis" dbtype:"TEXT"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP" index:"true"`
}

// Probabilities reassembles the stored triple.
func (p *PredictionResult) Probabilities() OutcomeProbabilities {
	return OutcomeProbabilities{
		HomeWin: p.HomeWinProbability,
		Draw:    p.DrawProbability,
		AwayWin: p.AwayWinProbability,
	}
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

func (p *PredictionResult) TableName() string {
	return "predictions"
}

func (p *PredictionResult) PrimaryKey() map[string]any {
	return map[string]any{
		"id": p.ID,
	}
}

func (p *PredictionResult) BeforeSave() error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}
