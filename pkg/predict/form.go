package predict

// TeamForm is a compact summary of a team's recent performance, computed
// fresh for each prediction and never persisted. The averages cover the
// sampled window; FormPoints is the raw 3/1/0 sum over that window,
// deliberately not averaged.
type TeamForm struct {
	AvgXg            float64
	AvgGoalsScored   float64
	AvgGoalsConceded float64
	FormPoints       float64
}

// Outcome is the result of one match from one team's point of view.
type Outcome int

const (
	Win Outcome = iota
	Draw
	Loss
)

// classifyOutcome tags a result by comparing the two final scores. The same
// function serves both sides of a fixture, so the home/away branches in the
// aggregator never duplicate win/draw/loss logic.
func classifyOutcome(scoredByUs, scoredByThem int) Outcome {
	switch {
	case scoredByUs > scoredByThem:
		return Win
	case scoredByUs < scoredByThem:
		return Loss
	default:
		return Draw
	}
}

func (o Outcome) Points() float64 {
	switch o {
	case Win:
		return 3
	case Draw:
		return 1
	default:
		return 0
	}
}

// ComputeForm reduces a team's recent match list into a TeamForm.
//
// recentMatches must already be filtered to completed matches and ordered
// most-recent-first; the aggregator samples at most the first
// Config.FormWindowSize entries and ignores the rest. A team's side in each
// match is determined by identity comparison against the match's home/away
// team ids. A missing xG value contributes 0; a missing score contributes 0
// to the scored/conceded totals for that field and disqualifies the match
// from form points, without discarding the rest of the match.
//
// An empty sample is a normal condition for new teams and yields the
// fallback defaults (the team's season xG average when known).
func ComputeForm(team *Team, recentMatches []*MatchRecord) TeamForm {
	if len(recentMatches) == 0 {
		avgXg := Config.DefaultAvgXg
		if team.HasAverageXg() {
			avgXg = team.AverageXg
		}
		return TeamForm{
			AvgXg:            avgXg,
			AvgGoalsScored:   Config.DefaultAvgGoalsScored,
			AvgGoalsConceded: Config.DefaultAvgGoalsConceded,
			FormPoints:       0.0,
		}
	}

	limit := Config.FormWindowSize
	if len(recentMatches) < limit {
		limit = len(recentMatches)
	}
	sample := recentMatches[:limit]

	var totalXg, totalScored, totalConceded, formPoints float64

	for _, match := range sample {
		wasHome := match.HomeID == team.ID

		var xg float64
		var scored, conceded int
		if wasHome {
			xg = match.HomeXg
			scored = match.HomeScore
			conceded = match.AwayScore
		} else {
			xg = match.AwayXg
			scored = match.AwayScore
			conceded = match.HomeScore
		}

		if xg > 0 {
			totalXg += xg
		}
		if scored >= 0 {
			totalScored += float64(scored)
		}
		if conceded >= 0 {
			totalConceded += float64(conceded)
		}

		// Form points require a full result
		if scored >= 0 && conceded >= 0 {
			formPoints += classifyOutcome(scored, conceded).Points()
		}
	}

	// Averages use the actual sample size, not the window constant
	n := float64(limit)
	return TeamForm{
		AvgXg:            totalXg / n,
		AvgGoalsScored:   totalScored / n,
		AvgGoalsConceded: totalConceded / n,
		FormPoints:       formPoints,
	}
}
