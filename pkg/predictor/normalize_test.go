package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

// completeRaw returns a fully-populated provider response
func completeRaw() *models.RawPrediction {
	return &models.RawPrediction{
		Outcome:      string(models.OutcomeHomeWin),
		Confidence:   intPtr(68),
		HomeGoals:    intPtr(2),
		AwayGoals:    intPtr(0),
		Reasoning:    "Home side dominant at home this season.",
		KeyInsight:   "Away side missing first-choice keeper.",
		BettingAngle: "Home win and under 3.5 goals.",
		Odds: &models.RawOddsTriple{
			Home: 1.65,
			Draw: 3.80,
			Away: 5.20,
		},
		Probabilities: &models.RawProbabilities{
			Home: 61,
			Draw: 24,
			Away: 15,
		},
		ValuePick:    boolPtr(true),
		RiskTier:     string(models.RiskMedium),
		ModelEdge:    floatPtr(4.2),
		SystemRecord: "form and injury weighted model",
	}
}

// TestNormalize_CompleteInput tests that a well-formed response passes
// through unchanged
func TestNormalize_CompleteInput(t *testing.T) {
	result := Normalize(completeRaw())

	require.NotNil(t, result)
	assert.Equal(t, models.OutcomeHomeWin, result.Outcome)
	assert.Equal(t, 68, result.Confidence)
	assert.Equal(t, 2, result.HomeGoals)
	assert.Equal(t, 0, result.AwayGoals)
	assert.Equal(t, 1.65, result.HomeOdds)
	assert.Equal(t, 3.80, result.DrawOdds)
	assert.Equal(t, 5.20, result.AwayOdds)
	assert.Equal(t, 61, result.HomeProbability)
	assert.Equal(t, 24, result.DrawProbability)
	assert.Equal(t, 15, result.AwayProbability)
	assert.True(t, result.ValuePick)
	assert.Equal(t, models.RiskMedium, result.RiskTier)
	assert.Equal(t, 4.2, result.ModelEdge)
	assert.Equal(t, "form and injury weighted model", result.SystemRecord)
}

// TestNormalize_ClampsConfidence tests confidence bounding
func TestNormalize_ClampsConfidence(t *testing.T) {
	tests := []struct {
		name       string
		confidence *int
		want       int
	}{
		{name: "above range clamps to 100", confidence: intPtr(140), want: 100},
		{name: "below range clamps to 0", confidence: intPtr(-5), want: 0},
		{name: "missing defaults to 50", confidence: nil, want: 50},
		{name: "in range passes through", confidence: intPtr(77), want: 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := completeRaw()
			raw.Confidence = tt.confidence
			assert.Equal(t, tt.want, Normalize(raw).Confidence)
		})
	}
}

// TestNormalize_MissingOdds tests that an absent odds block becomes the
// fixed balanced triple
func TestNormalize_MissingOdds(t *testing.T) {
	raw := completeRaw()
	raw.Odds = nil

	result := Normalize(raw)

	assert.Equal(t, BalancedOdds, result.HomeOdds)
	assert.Equal(t, BalancedOdds, result.DrawOdds)
	assert.Equal(t, BalancedOdds, result.AwayOdds)
}

// TestNormalize_FloorsOdds tests that odds at or below 1.0 are floored
func TestNormalize_FloorsOdds(t *testing.T) {
	raw := completeRaw()
	raw.Odds = &models.RawOddsTriple{Home: 0.5, Draw: 1.0, Away: 2.4}

	result := Normalize(raw)

	assert.Equal(t, minOdds, result.HomeOdds)
	assert.Equal(t, minOdds, result.DrawOdds)
	assert.Equal(t, 2.4, result.AwayOdds)
}

// TestNormalize_MissingProbabilities tests the balanced probability default
func TestNormalize_MissingProbabilities(t *testing.T) {
	raw := completeRaw()
	raw.Probabilities = nil

	result := Normalize(raw)

	assert.Equal(t, BalancedProbability, result.HomeProbability)
	assert.Equal(t, BalancedProbability, result.AwayProbability)
	assert.Equal(t, 100, result.HomeProbability+result.DrawProbability+result.AwayProbability)
}

// TestNormalize_RescalesProbabilities tests that a triple not summing to
// 100 is rescaled
func TestNormalize_RescalesProbabilities(t *testing.T) {
	raw := completeRaw()
	raw.Probabilities = &models.RawProbabilities{Home: 60, Draw: 60, Away: 60}

	result := Normalize(raw)

	assert.Equal(t, 100, result.HomeProbability+result.DrawProbability+result.AwayProbability)
	assert.Equal(t, 33, result.HomeProbability)
	assert.Equal(t, 33, result.AwayProbability)
}

// TestNormalize_ZeroProbabilities tests that an all-zero triple falls back
// to the balanced split
func TestNormalize_ZeroProbabilities(t *testing.T) {
	raw := completeRaw()
	raw.Probabilities = &models.RawProbabilities{}

	result := Normalize(raw)

	assert.Equal(t, BalancedProbability, result.HomeProbability)
	assert.Equal(t, 100, result.HomeProbability+result.DrawProbability+result.AwayProbability)
}

// TestNormalize_InvalidOutcome tests that an unknown outcome degrades to
// a draw
func TestNormalize_InvalidOutcome(t *testing.T) {
	raw := completeRaw()
	raw.Outcome = "HOME_WINS_BIG"

	result := Normalize(raw)

	assert.Equal(t, models.OutcomeDraw, result.Outcome)
}

// TestNormalize_MissingScore tests outcome-consistent score back-fill
func TestNormalize_MissingScore(t *testing.T) {
	tests := []struct {
		name     string
		outcome  models.Outcome
		wantHome int
		wantAway int
	}{
		{name: "home win", outcome: models.OutcomeHomeWin, wantHome: 2, wantAway: 1},
		{name: "away win", outcome: models.OutcomeAwayWin, wantHome: 1, wantAway: 2},
		{name: "draw", outcome: models.OutcomeDraw, wantHome: 1, wantAway: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := completeRaw()
			raw.Outcome = string(tt.outcome)
			raw.HomeGoals = nil
			raw.AwayGoals = nil

			result := Normalize(raw)

			assert.Equal(t, tt.wantHome, result.HomeGoals)
			assert.Equal(t, tt.wantAway, result.AwayGoals)
		})
	}
}

// TestNormalize_NegativeGoals tests that a negative scoreline is replaced
func TestNormalize_NegativeGoals(t *testing.T) {
	raw := completeRaw()
	raw.HomeGoals = intPtr(-1)
	raw.AwayGoals = intPtr(3)

	result := Normalize(raw)

	assert.Equal(t, 2, result.HomeGoals)
	assert.Equal(t, 1, result.AwayGoals)
}

// TestNormalize_DefaultsNarrativeFields tests neutral strings and the
// MEDIUM risk default
func TestNormalize_DefaultsNarrativeFields(t *testing.T) {
	raw := completeRaw()
	raw.Reasoning = ""
	raw.KeyInsight = ""
	raw.BettingAngle = ""
	raw.SystemRecord = ""
	raw.RiskTier = ""
	raw.ValuePick = nil
	raw.ModelEdge = nil

	result := Normalize(raw)

	assert.Equal(t, neutralReasoning, result.Reasoning)
	assert.Equal(t, neutralInsight, result.KeyInsight)
	assert.Equal(t, neutralAngle, result.BettingAngle)
	assert.Equal(t, neutralSystemRecord, result.SystemRecord)
	assert.Equal(t, models.RiskMedium, result.RiskTier)
	assert.False(t, result.ValuePick)
	assert.Equal(t, 0.0, result.ModelEdge)
}

// TestNormalize_NilInput tests that a nil response yields the neutral
// prediction
func TestNormalize_NilInput(t *testing.T) {
	result := Normalize(nil)

	require.NotNil(t, result)
	assert.Equal(t, models.OutcomeDraw, result.Outcome)
	assert.Equal(t, 33, result.Confidence)
}

// TestNormalizeResult_OutOfContract tests that a shaped result from an
// arbitrary fallback implementation is re-clamped to the output bounds
func TestNormalizeResult_OutOfContract(t *testing.T) {
	result := NormalizeResult(&models.PredictionResult{
		Outcome:    models.OutcomeHomeWin,
		Confidence: 140,
	})

	require.NotNil(t, result)
	assert.Equal(t, models.OutcomeHomeWin, result.Outcome)
	assert.Equal(t, 100, result.Confidence)
	assert.Equal(t, 2, result.HomeGoals)
	assert.Equal(t, 1, result.AwayGoals)
	assert.Equal(t, BalancedOdds, result.HomeOdds)
	assert.Equal(t, BalancedOdds, result.DrawOdds)
	assert.Equal(t, BalancedOdds, result.AwayOdds)
	assert.Equal(t, 100, result.HomeProbability+result.DrawProbability+result.AwayProbability)
	assert.Equal(t, models.RiskMedium, result.RiskTier)
	assert.NotEmpty(t, result.Reasoning)
	assert.NotEmpty(t, result.SystemRecord)
}

// TestNormalizeResult_Bounds tests individual clamp rules on shaped input
func TestNormalizeResult_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		input  models.PredictionResult
		verify func(t *testing.T, result *models.PredictionResult)
	}{
		{
			name:  "negative confidence floored",
			input: models.PredictionResult{Outcome: models.OutcomeDraw, Confidence: -5},
			verify: func(t *testing.T, result *models.PredictionResult) {
				assert.Equal(t, 0, result.Confidence)
			},
		},
		{
			name: "sub-unity odds floored",
			input: models.PredictionResult{
				Outcome:  models.OutcomeAwayWin,
				HomeOdds: 0.5, DrawOdds: 3.4, AwayOdds: 1.0,
			},
			verify: func(t *testing.T, result *models.PredictionResult) {
				assert.Equal(t, minOdds, result.HomeOdds)
				assert.Equal(t, 3.4, result.DrawOdds)
				assert.Equal(t, minOdds, result.AwayOdds)
			},
		},
		{
			name: "negative score replaced with outcome-consistent pair",
			input: models.PredictionResult{
				Outcome: models.OutcomeAwayWin, HomeGoals: -1, AwayGoals: 2,
			},
			verify: func(t *testing.T, result *models.PredictionResult) {
				assert.Equal(t, 1, result.HomeGoals)
				assert.Equal(t, 2, result.AwayGoals)
			},
		},
		{
			name: "off-sum probabilities rescaled",
			input: models.PredictionResult{
				Outcome:         models.OutcomeHomeWin,
				HomeProbability: 60, DrawProbability: 60, AwayProbability: 60,
			},
			verify: func(t *testing.T, result *models.PredictionResult) {
				assert.Equal(t, 33, result.HomeProbability)
				assert.Equal(t, 34, result.DrawProbability)
				assert.Equal(t, 33, result.AwayProbability)
			},
		},
		{
			name:  "invalid outcome becomes draw",
			input: models.PredictionResult{Outcome: "HOME_DESTROYS_AWAY", Confidence: 70},
			verify: func(t *testing.T, result *models.PredictionResult) {
				assert.Equal(t, models.OutcomeDraw, result.Outcome)
			},
		},
		{
			name:  "missing risk tier defaults to medium",
			input: models.PredictionResult{Outcome: models.OutcomeDraw, RiskTier: ""},
			verify: func(t *testing.T, result *models.PredictionResult) {
				assert.Equal(t, models.RiskMedium, result.RiskTier)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			result := NormalizeResult(&input)
			require.NotNil(t, result)
			tt.verify(t, result)
		})
	}
}

// TestNormalizeResult_CanonicalPassthrough tests that an in-contract result
// survives unchanged
func TestNormalizeResult_CanonicalPassthrough(t *testing.T) {
	canonical := FromWinRates(0.8, 1.0/3.0)

	result := NormalizeResult(canonical)

	assert.Equal(t, canonical, result)
}

func TestNormalizeResult_NilInput(t *testing.T) {
	result := NormalizeResult(nil)

	assert.Equal(t, Neutral(), result)
}
