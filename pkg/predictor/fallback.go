package predictor

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// MatchHistoryReader is the only data dependency of the fallback model
type MatchHistoryReader interface {
	GetRecentMatches(ctx context.Context, team, league string, limit int) ([]models.MatchRecord, error)
}

const (
	fallbackWindow        = 5
	neutralWinRate        = 0.5
	winRateEdgeThreshold  = 0.2
	maxFallbackConfidence = 75
)

const fallbackSystemRecord = "statistical form model"

// Fallback deterministically predicts from locally available history when
// the generative provider is unavailable. It never returns an error: if
// even the history read fails it degrades to the fixed neutral result.
type Fallback struct {
	reader  MatchHistoryReader
	timeout time.Duration
	logger  zerolog.Logger
}

// NewFallback creates a fallback predictor
func NewFallback(reader MatchHistoryReader, timeout time.Duration, logger zerolog.Logger) *Fallback {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &Fallback{
		reader:  reader,
		timeout: timeout,
		logger:  logger.With().Str("component", "fallback_predictor").Logger(),
	}
}

// Predict computes a form-based prediction for the fixture
func (f *Fallback) Predict(ctx context.Context, home, away, league string) *models.PredictionResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	homeMatches, homeErr := f.reader.GetRecentMatches(ctx, home, league, fallbackWindow)
	awayMatches, awayErr := f.reader.GetRecentMatches(ctx, away, league, fallbackWindow)
	if homeErr != nil || awayErr != nil {
		f.logger.Warn().
			AnErr("home_err", homeErr).
			AnErr("away_err", awayErr).
			Msg("history read failed, returning neutral prediction")
		return Neutral()
	}

	homeRate := winRate(homeMatches, home)
	awayRate := winRate(awayMatches, away)

	result := FromWinRates(homeRate, awayRate)

	f.logger.Info().
		Str("home", home).
		Str("away", away).
		Float64("home_rate", homeRate).
		Float64("away_rate", awayRate).
		Str("outcome", string(result.Outcome)).
		Int("confidence", result.Confidence).
		Msg("fallback prediction computed")

	return result
}

// FromWinRates is the pure core of the fallback model: a function of the
// two teams' recent win rates only, so identical history always yields an
// identical prediction.
func FromWinRates(homeRate, awayRate float64) *models.PredictionResult {
	var outcome models.Outcome
	var confidence int
	var homeGoals, awayGoals int

	switch {
	case homeRate-awayRate > winRateEdgeThreshold:
		outcome = models.OutcomeHomeWin
		confidence = boundedConfidence(homeRate - awayRate)
		homeGoals, awayGoals = 2, 1
	case awayRate-homeRate > winRateEdgeThreshold:
		outcome = models.OutcomeAwayWin
		confidence = boundedConfidence(awayRate - homeRate)
		homeGoals, awayGoals = 1, 2
	default:
		outcome = models.OutcomeDraw
		confidence = 50
		homeGoals, awayGoals = 1, 1
	}

	homeProb, drawProb, awayProb := probabilitySplit(outcome, confidence)

	return &models.PredictionResult{
		Outcome:         outcome,
		Confidence:      confidence,
		HomeGoals:       homeGoals,
		AwayGoals:       awayGoals,
		Reasoning:       "Form-based statistical prediction from each team's recent results.",
		KeyInsight:      "Recent win rates are the dominant signal in this projection.",
		BettingAngle:    "Consider the projected winner only if prices imply lower probability.",
		HomeOdds:        OddsFromProbability(homeProb),
		DrawOdds:        OddsFromProbability(drawProb),
		AwayOdds:        OddsFromProbability(awayProb),
		HomeProbability: homeProb,
		DrawProbability: drawProb,
		AwayProbability: awayProb,
		ValuePick:       confidence > 70,
		RiskTier:        riskTier(confidence),
		ModelEdge:       0,
		SystemRecord:    fallbackSystemRecord,
	}
}

// Neutral is the unconditional last-resort prediction used when even
// local history cannot be read.
func Neutral() *models.PredictionResult {
	return &models.PredictionResult{
		Outcome:         models.OutcomeDraw,
		Confidence:      33,
		HomeGoals:       1,
		AwayGoals:       1,
		Reasoning:       "Insufficient data was available; returning a neutral projection.",
		KeyInsight:      "No reliable recent history for either side.",
		BettingAngle:    "No betting angle recommended without data.",
		HomeOdds:        BalancedOdds,
		DrawOdds:        BalancedOdds,
		AwayOdds:        BalancedOdds,
		HomeProbability: BalancedProbability,
		DrawProbability: 100 - 2*BalancedProbability,
		AwayProbability: BalancedProbability,
		ValuePick:       false,
		RiskTier:        models.RiskHigh,
		ModelEdge:       0,
		SystemRecord:    fallbackSystemRecord,
	}
}

// winRate is the share of wins over the window; no history is neutral 0.5
func winRate(matches []models.MatchRecord, team string) float64 {
	if len(matches) == 0 {
		return neutralWinRate
	}
	wins := 0
	for _, m := range matches {
		if m.ResultFor(team) == "W" {
			wins++
		}
	}
	return float64(wins) / float64(len(matches))
}

// boundedConfidence maps a win-rate edge onto [?,75]: 50 + 50*edge, capped
func boundedConfidence(edge float64) int {
	conf := int(math.Round(50 + 50*edge))
	if conf > maxFallbackConfidence {
		return maxFallbackConfidence
	}
	return conf
}

// probabilitySplit gives the predicted outcome its confidence as
// probability and splits the remainder across the other two outcomes.
func probabilitySplit(outcome models.Outcome, confidence int) (home, draw, away int) {
	a, b := splitRemainder(confidence)
	switch outcome {
	case models.OutcomeHomeWin:
		return confidence, a, b
	case models.OutcomeAwayWin:
		return b, a, confidence
	default:
		return a, confidence, b
	}
}

func riskTier(confidence int) models.RiskTier {
	switch {
	case confidence > 75:
		return models.RiskLow
	case confidence > 60:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}
