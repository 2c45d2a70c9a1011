package predictor

import (
	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// Neutral filler text for narrative fields the provider left empty
const (
	neutralReasoning    = "No detailed reasoning was provided for this prediction."
	neutralInsight      = "No standout factor was identified."
	neutralAngle        = "No specific betting angle recommended."
	neutralSystemRecord = "generative model"
)

// Normalize converts a raw provider prediction into the canonical bounded
// result. It is unconditional: every field of the output is valid no matter
// how incomplete or out-of-range the input was.
func Normalize(raw *models.RawPrediction) *models.PredictionResult {
	if raw == nil {
		return Neutral()
	}

	result := &models.PredictionResult{
		Outcome:      models.Outcome(raw.Outcome),
		Reasoning:    raw.Reasoning,
		KeyInsight:   raw.KeyInsight,
		BettingAngle: raw.BettingAngle,
		SystemRecord: raw.SystemRecord,
	}

	if !result.Outcome.Valid() {
		result.Outcome = models.OutcomeDraw
	}

	result.Confidence = clampConfidence(raw.Confidence)
	result.HomeGoals, result.AwayGoals = normalizeScore(raw.HomeGoals, raw.AwayGoals, result.Outcome)
	result.HomeProbability, result.DrawProbability, result.AwayProbability = normalizeProbabilities(raw.Probabilities)
	result.HomeOdds, result.DrawOdds, result.AwayOdds = normalizeOdds(raw.Odds)

	if raw.ValuePick != nil {
		result.ValuePick = *raw.ValuePick
	}
	if raw.ModelEdge != nil {
		result.ModelEdge = *raw.ModelEdge
	}

	result.RiskTier = models.RiskTier(raw.RiskTier)
	if !result.RiskTier.Valid() {
		result.RiskTier = models.RiskMedium
	}

	fillNarrative(result)

	return result
}

// NormalizeResult re-clamps an already-shaped result. The orchestrator runs
// every fallback result through it, so the output bounds hold no matter
// which FallbackPredictor implementation produced it.
func NormalizeResult(result *models.PredictionResult) *models.PredictionResult {
	if result == nil {
		return Neutral()
	}

	out := *result

	if !out.Outcome.Valid() {
		out.Outcome = models.OutcomeDraw
	}

	switch {
	case out.Confidence < 0:
		out.Confidence = 0
	case out.Confidence > 100:
		out.Confidence = 100
	}

	if out.HomeGoals < 0 || out.AwayGoals < 0 {
		out.HomeGoals, out.AwayGoals = normalizeScore(nil, nil, out.Outcome)
	}

	out.HomeProbability, out.DrawProbability, out.AwayProbability = normalizeProbabilities(&models.RawProbabilities{
		Home: out.HomeProbability,
		Draw: out.DrawProbability,
		Away: out.AwayProbability,
	})

	if out.HomeOdds <= 0 && out.DrawOdds <= 0 && out.AwayOdds <= 0 {
		out.HomeOdds, out.DrawOdds, out.AwayOdds = BalancedOdds, BalancedOdds, BalancedOdds
	} else {
		out.HomeOdds = floorOdds(out.HomeOdds)
		out.DrawOdds = floorOdds(out.DrawOdds)
		out.AwayOdds = floorOdds(out.AwayOdds)
	}

	if !out.RiskTier.Valid() {
		out.RiskTier = models.RiskMedium
	}

	fillNarrative(&out)

	return &out
}

// fillNarrative backfills empty narrative fields with neutral text
func fillNarrative(result *models.PredictionResult) {
	if result.Reasoning == "" {
		result.Reasoning = neutralReasoning
	}
	if result.KeyInsight == "" {
		result.KeyInsight = neutralInsight
	}
	if result.BettingAngle == "" {
		result.BettingAngle = neutralAngle
	}
	if result.SystemRecord == "" {
		result.SystemRecord = neutralSystemRecord
	}
}

// clampConfidence bounds confidence to [0,100], defaulting to 50 when absent
func clampConfidence(conf *int) int {
	if conf == nil {
		return 50
	}
	switch {
	case *conf < 0:
		return 0
	case *conf > 100:
		return 100
	default:
		return *conf
	}
}

// normalizeScore fills a missing or negative scoreline with one consistent
// with the predicted outcome.
func normalizeScore(home, away *int, outcome models.Outcome) (int, int) {
	if home == nil || away == nil || *home < 0 || *away < 0 {
		switch outcome {
		case models.OutcomeHomeWin:
			return 2, 1
		case models.OutcomeAwayWin:
			return 1, 2
		default:
			return 1, 1
		}
	}
	return *home, *away
}

// normalizeProbabilities returns a percentage triple summing to 100. A
// missing or degenerate block falls back to the balanced split; a triple
// that sums off by more than rounding noise is rescaled.
func normalizeProbabilities(probs *models.RawProbabilities) (int, int, int) {
	if probs == nil {
		return BalancedProbability, 100 - 2*BalancedProbability, BalancedProbability
	}

	home, draw, away := probs.Home, probs.Draw, probs.Away
	if home < 0 {
		home = 0
	}
	if draw < 0 {
		draw = 0
	}
	if away < 0 {
		away = 0
	}

	sum := home + draw + away
	if sum == 0 {
		return BalancedProbability, 100 - 2*BalancedProbability, BalancedProbability
	}
	if sum != 100 {
		home = home * 100 / sum
		away = away * 100 / sum
		draw = 100 - home - away
	}
	return home, draw, away
}

// normalizeOdds returns a decimal odds triple strictly above 1.0. A missing
// block takes the fixed balanced triple; out-of-range values are floored.
func normalizeOdds(odds *models.RawOddsTriple) (float64, float64, float64) {
	if odds == nil {
		return BalancedOdds, BalancedOdds, BalancedOdds
	}
	return floorOdds(odds.Home), floorOdds(odds.Draw), floorOdds(odds.Away)
}

func floorOdds(odds float64) float64 {
	if odds <= 1.0 {
		return minOdds
	}
	return odds
}
