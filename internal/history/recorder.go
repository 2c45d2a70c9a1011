package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// HistoryWriter persists prediction history rows
type HistoryWriter interface {
	InsertHistory(ctx context.Context, rec *models.PredictionHistory) error
}

// EventPublisher emits recorded predictions for downstream backtesting
type EventPublisher interface {
	Publish(ctx context.Context, record models.PredictionHistory) error
}

// RecordInput is everything the recorder needs about one finished
// prediction: the normalized result plus its full provenance.
type RecordInput struct {
	Request       models.PredictionRequest
	Result        models.PredictionResult
	PromptSource  string
	ExperimentID  string
	ExperimentArm string
	UsedFallback  bool
	InputSnapshot string
}

// Recorder persists prediction outcomes for backtesting. Recording is
// strictly best-effort: it runs detached from the request with its own
// deadline, and any failure is logged and swallowed.
type Recorder struct {
	writer    HistoryWriter
	publisher EventPublisher
	grace     time.Duration
	logger    zerolog.Logger
}

// NewRecorder creates a history recorder. publisher may be nil.
func NewRecorder(writer HistoryWriter, publisher EventPublisher, grace time.Duration, logger zerolog.Logger) *Recorder {
	if grace == 0 {
		grace = 2 * time.Second
	}
	return &Recorder{
		writer:    writer,
		publisher: publisher,
		grace:     grace,
		logger:    logger.With().Str("component", "history_recorder").Logger(),
	}
}

// Record persists one prediction asynchronously. It returns immediately;
// the write happens on a detached context so a caller that has already
// received its response cannot cancel it.
func (r *Recorder) Record(input RecordInput) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.grace)
		defer cancel()
		r.record(ctx, input)
	}()
}

// RecordSync persists one prediction on the calling goroutine. Tests and
// shutdown paths use it to observe completion.
func (r *Recorder) RecordSync(ctx context.Context, input RecordInput) {
	r.record(ctx, input)
}

func (r *Recorder) record(ctx context.Context, input RecordInput) {
	rec := &models.PredictionHistory{
		ID:            uuid.New(),
		MatchID:       input.Request.MatchID,
		League:        input.Request.League,
		HomeTeam:      input.Request.HomeTeam,
		AwayTeam:      input.Request.AwayTeam,
		Result:        input.Result,
		PromptSource:  input.PromptSource,
		ExperimentID:  input.ExperimentID,
		ExperimentArm: input.ExperimentArm,
		UsedFallback:  input.UsedFallback,
		InputSnapshot: input.InputSnapshot,
		Status:        models.HistoryPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := r.writer.InsertHistory(ctx, rec); err != nil {
		r.logger.Error().
			Err(err).
			Str("match_id", rec.MatchID).
			Str("home_team", rec.HomeTeam).
			Str("away_team", rec.AwayTeam).
			Msg("failed to persist prediction history")
		return
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, *rec); err != nil {
			r.logger.Warn().
				Err(err).
				Str("record_id", rec.ID.String()).
				Msg("failed to publish prediction event")
		}
	}

	r.logger.Debug().
		Str("record_id", rec.ID.String()).
		Str("match_id", rec.MatchID).
		Bool("used_fallback", rec.UsedFallback).
		Msg("recorded prediction history")
}
