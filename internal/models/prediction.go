package models

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the predicted match result
type Outcome string

const (
	OutcomeHomeWin Outcome = "HOME_WIN"
	OutcomeDraw    Outcome = "DRAW"
	OutcomeAwayWin Outcome = "AWAY_WIN"
)

// Valid reports whether the outcome is one of the three known values
func (o Outcome) Valid() bool {
	return o == OutcomeHomeWin || o == OutcomeDraw || o == OutcomeAwayWin
}

// RiskTier classifies how safe the prediction is considered
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// Valid reports whether the risk tier is a known value
func (r RiskTier) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// PredictionRequest is the inbound request for one match prediction.
// MatchID is optional; without it history persistence and experiment
// assignment are skipped.
type PredictionRequest struct {
	MatchID  string `json:"match_id,omitempty"`
	League   string `json:"league,omitempty"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// PredictionResult is the canonical, fully-populated output of the pipeline.
// Every field is always present and within bounds: confidence in [0,100],
// probabilities summing to ~100, odds strictly greater than 1.0.
type PredictionResult struct {
	Outcome         Outcome  `json:"outcome"`
	Confidence      int      `json:"confidence"`
	HomeGoals       int      `json:"home_goals"`
	AwayGoals       int      `json:"away_goals"`
	Reasoning       string   `json:"reasoning"`
	KeyInsight      string   `json:"key_insight"`
	BettingAngle    string   `json:"betting_angle"`
	HomeOdds        float64  `json:"home_odds"`
	DrawOdds        float64  `json:"draw_odds"`
	AwayOdds        float64  `json:"away_odds"`
	HomeProbability int      `json:"home_probability"`
	DrawProbability int      `json:"draw_probability"`
	AwayProbability int      `json:"away_probability"`
	ValuePick       bool     `json:"value_pick"`
	RiskTier        RiskTier `json:"risk_tier"`
	ModelEdge       float64  `json:"model_edge"`
	SystemRecord    string   `json:"system_record"`
}

// RawPrediction is the structured object parsed from the generative
// provider's response. Optional fields stay nil when the model omits them;
// the normalizer back-fills every gap.
type RawPrediction struct {
	Outcome         string            `json:"outcome"`
	Confidence      *int              `json:"confidence"`
	HomeGoals       *int              `json:"home_goals"`
	AwayGoals       *int              `json:"away_goals"`
	Reasoning       string            `json:"reasoning"`
	KeyInsight      string            `json:"key_insight"`
	BettingAngle    string            `json:"betting_angle"`
	Odds            *RawOddsTriple    `json:"odds"`
	Probabilities   *RawProbabilities `json:"probabilities"`
	ValuePick       *bool             `json:"value_pick"`
	RiskTier        string            `json:"risk_tier"`
	ModelEdge       *float64          `json:"model_edge"`
	SystemRecord    string            `json:"system_record"`
}

// RawOddsTriple is the three-way decimal odds block from the provider
type RawOddsTriple struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// RawProbabilities is the three-way percentage block from the provider
type RawProbabilities struct {
	Home int `json:"home"`
	Draw int `json:"draw"`
	Away int `json:"away"`
}

// HistoryStatus is the grading state of a persisted prediction. This
// service only ever writes PENDING; the backtesting job owns the rest.
type HistoryStatus string

const (
	HistoryPending HistoryStatus = "PENDING"
	HistoryWon     HistoryStatus = "WON"
	HistoryLost    HistoryStatus = "LOST"
	HistoryPush    HistoryStatus = "PUSH"
)

// PredictionHistory is the append-only record persisted for backtesting:
// the normalized result plus full provenance of how it was produced.
type PredictionHistory struct {
	ID            uuid.UUID        `json:"id"`
	MatchID       string           `json:"match_id"`
	League        string           `json:"league"`
	HomeTeam      string           `json:"home_team"`
	AwayTeam      string           `json:"away_team"`
	Result        PredictionResult `json:"result"`
	PromptSource  string           `json:"prompt_source"`
	ExperimentID  string           `json:"experiment_id,omitempty"`
	ExperimentArm string           `json:"experiment_arm,omitempty"`
	UsedFallback  bool             `json:"used_fallback"`
	InputSnapshot string           `json:"input_snapshot"`
	Status        HistoryStatus    `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}

// KafkaPredictionMessage is the event emitted to the backtesting topic
// after a prediction has been recorded.
type KafkaPredictionMessage struct {
	Record    PredictionHistory `json:"record"`
	Timestamp time.Time         `json:"timestamp"`
}
