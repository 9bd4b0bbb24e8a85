package predict

import (
	"fmt"
	"math"
)

// OutcomeProbabilities holds the normalized win/draw/win distribution for a
// fixture. The three values are non-negative and sum to 1.0.
type OutcomeProbabilities struct {
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
}

// ConfidenceLevel is a coarse three-bucket label summarizing how decisively
// one outcome dominates the distribution.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// EstimateGoals converts the attacking team's form and the defending team's
// form into one side's predicted goal count for this fixture.
//
//	xG = (avgXg × defensiveAdjustment × formMultiplier) + homeAdvantage
//
// The defensive adjustment scales the attack up against a leaky defense and
// down against a tight one; the form multiplier swings around 1.0 as the
// attacking side's form points deviate from an average record. Neither term
// is bounded on its own, only the final xG is clamped. The function is pure:
// identical inputs always produce identical output.
func EstimateGoals(attacking, defending TeamForm, isHome bool) float64 {
	defensiveAdjustment := defending.AvgGoalsConceded / Config.LeagueAvgGoalsConceded

	formMultiplier := 1.0 + ((attacking.FormPoints - Config.AverageFormPoints) / Config.FormPointsDivisor)

	homeAdvantage := 0.0
	if isHome {
		homeAdvantage = Config.HomeAdvantage
	}

	xg := (attacking.AvgXg * defensiveAdjustment * formMultiplier) + homeAdvantage

	return math.Max(Config.MinExpectedGoals, math.Min(Config.MaxExpectedGoals, xg))
}

// PoissonMass returns P(k; lambda), the probability of exactly k goals for a
// side whose expected goal count is lambda. For lambda 0 the distribution
// degenerates to all mass at zero.
func PoissonMass(k int, lambda float64) float64 {
	return math.Pow(lambda, float64(k)) * math.Exp(-lambda) / float64(factorial(k))
}

// factorial computes n! as an exact integer. The scoreline bound keeps n
// small, so there is no overflow concern.
func factorial(n int) int64 {
	result := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		result *= i
	}
	return result
}

// ComputeProbabilities enumerates every scoreline on the bounded grid under
// independent Poisson goal models and accumulates the joint mass into
// home-win, draw and away-win buckets, then renormalizes the truncated
// distribution so the three probabilities sum to exactly 1.0.
//
// The win masses are accumulated in mirrored iteration order and totalled
// symmetrically, so ComputeProbabilities(a, b) and ComputeProbabilities(b, a)
// are exact mirrors of each other bit-for-bit.
func ComputeProbabilities(homeXg, awayXg float64) (OutcomeProbabilities, error) {
	if !isValidRate(homeXg) || !isValidRate(awayXg) {
		return OutcomeProbabilities{}, fmt.Errorf("%w: expected goals must be finite and non-negative, got home=%v away=%v",
			ErrInvalidModelInput, homeXg, awayXg)
	}

	bound := Config.MaxScorelineGoals

	homeMass := make([]float64, bound+1)
	awayMass := make([]float64, bound+1)
	for k := 0; k <= bound; k++ {
		homeMass[k] = PoissonMass(k, homeXg)
		awayMass[k] = PoissonMass(k, awayXg)
	}

	var homeWin, draw, awayWin float64

	// Lower triangle: home team scores more
	for h := 1; h <= bound; h++ {
		for a := 0; a < h; a++ {
			homeWin += homeMass[h] * awayMass[a]
		}
	}

	// Diagonal: equal scores
	for k := 0; k <= bound; k++ {
		draw += homeMass[k] * awayMass[k]
	}

	// Upper triangle, walked column-first to mirror the lower triangle
	for a := 1; a <= bound; a++ {
		for h := 0; h < a; h++ {
			awayWin += homeMass[h] * awayMass[a]
		}
	}

	total := (homeWin + awayWin) + draw
	if total <= 0 {
		// Unreachable for finite non-negative rates, guarded anyway
		return OutcomeProbabilities{}, fmt.Errorf("%w: scoreline grid carries no probability mass", ErrInvalidModelInput)
	}

	return OutcomeProbabilities{
		HomeWin: homeWin / total,
		Draw:    draw / total,
		AwayWin: awayWin / total,
	}, nil
}

func isValidRate(lambda float64) bool {
	return !math.IsNaN(lambda) && !math.IsInf(lambda, 0) && lambda >= 0
}

// ClassifyConfidence labels how decisive the distribution is. Boundary values
// belong to the lower bracket: a maximum of exactly 0.60 is MEDIUM and
// exactly 0.45 is LOW.
func ClassifyConfidence(probs OutcomeProbabilities) ConfidenceLevel {
	maxProb := math.Max(probs.HomeWin, math.Max(probs.Draw, probs.AwayWin))

	switch {
	case maxProb > Config.HighConfidenceThreshold:
		return ConfidenceHigh
	case maxProb > Config.MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
