package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/config"
	"github.com/cypherlabdev/match-predictor-service/internal/history"
	"github.com/cypherlabdev/match-predictor-service/internal/metrics"
	"github.com/cypherlabdev/match-predictor-service/internal/models"
	"github.com/cypherlabdev/match-predictor-service/pkg/predictor"
)

// pipelineState names each stage of one prediction request. Every
// transition to the fallback path is an explicit edge, not an exception
// catch-all.
type pipelineState string

const (
	stateAggregating pipelineState = "aggregating_context"
	stateSelecting   pipelineState = "selecting_prompt"
	stateInvoking    pipelineState = "invoking_model"
	stateFallingBack pipelineState = "falling_back"
	stateNormalizing pipelineState = "normalizing"
	stateRecording   pipelineState = "recording"
)

// PredictionService orchestrates the full prediction pipeline. Except for
// invalid input it always returns a valid result: every internal failure
// degrades to a lower-fidelity prediction instead of an error.
type PredictionService struct {
	builder  ContextBuilder
	selector PromptSelector
	invoker  InferenceInvoker
	fallback FallbackPredictor
	recorder HistoryRecorder
	cfg      config.PipelineConfig
	logger   zerolog.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	builder ContextBuilder,
	selector PromptSelector,
	invoker InferenceInvoker,
	fallback FallbackPredictor,
	recorder HistoryRecorder,
	cfg config.PipelineConfig,
	logger zerolog.Logger,
) *PredictionService {
	return &PredictionService{
		builder:  builder,
		selector: selector,
		invoker:  invoker,
		fallback: fallback,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger.With().Str("component", "prediction_service").Logger(),
	}
}

// GeneratePrediction runs the pipeline for one fixture. The only error it
// can return is ErrInvalidInput; all other failures, including a panicking
// collaborator, produce a degraded but fully-populated result.
func (s *PredictionService) GeneratePrediction(ctx context.Context, req models.PredictionRequest) (result *models.PredictionResult, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("match_id", req.MatchID).
				Interface("panic", r).
				Msg("pipeline panic recovered, serving neutral result")
			metrics.FallbacksTotal.WithLabelValues("panic").Inc()
			result = predictor.Neutral()
			err = nil
		}
	}()

	if strings.TrimSpace(req.HomeTeam) == "" || strings.TrimSpace(req.AwayTeam) == "" {
		metrics.InvalidInputsTotal.Inc()
		return nil, fmt.Errorf("%w: home_team and away_team are required", models.ErrInvalidInput)
	}
	if req.League == "" {
		req.League = s.cfg.DefaultLeague
	}

	logger := s.logger.With().
		Str("match_id", req.MatchID).
		Str("home_team", req.HomeTeam).
		Str("away_team", req.AwayTeam).
		Str("league", req.League).
		Logger()

	var state pipelineState
	step := func(next pipelineState) {
		state = next
		logger.Debug().Str("state", string(state)).Msg("pipeline transition")
	}

	step(stateAggregating)
	cctx, cancel := context.WithTimeout(ctx, s.cfg.ContextBudget)
	groundingContext := s.builder.BuildContext(cctx, req.HomeTeam, req.AwayTeam, req.League)
	cancel()

	step(stateSelecting)
	template := s.selector.Select(ctx, req.League, req.MatchID)
	instruction := renderTemplate(template.Text, req)

	step(stateInvoking)
	usedFallback := false
	raw, rawErr := s.predictRaw(ctx, instruction, groundingContext)
	if rawErr != nil {
		kind := models.InferenceKind(rawErr)
		if kind == "" {
			kind = models.InferenceProviderError
		}
		logger.Warn().
			Err(rawErr).
			Str("error_kind", string(kind)).
			Msg("inference failed, routing to fallback")
		metrics.FallbacksTotal.WithLabelValues(string(kind)).Inc()

		step(stateFallingBack)
		result = s.runFallback(ctx, req)
		usedFallback = true
	}

	// Both paths pass through here so the output bounds hold regardless
	// of which predictor produced the result.
	step(stateNormalizing)
	if usedFallback {
		result = predictor.NormalizeResult(result)
	} else {
		result = predictor.Normalize(raw)
	}

	step(stateRecording)
	if req.MatchID != "" {
		s.recorder.Record(history.RecordInput{
			Request:       req,
			Result:        *result,
			PromptSource:  template.Source,
			ExperimentID:  template.ExperimentID,
			ExperimentArm: template.ExperimentArm,
			UsedFallback:  usedFallback,
			InputSnapshot: groundingContext,
		})
	}

	path := "inference"
	if usedFallback {
		path = "fallback"
	}
	metrics.PredictionsTotal.WithLabelValues(path, string(result.Outcome)).Inc()
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Str("state", string(state)).
		Str("path", path).
		Str("outcome", string(result.Outcome)).
		Int("confidence", result.Confidence).
		Str("prompt_source", template.Source).
		Dur("duration", time.Since(start)).
		Msg("prediction completed")

	return result, nil
}

// predictRaw runs the generative path under its own deadline. A nil
// invoker behaves like an unavailable provider so the fallback routing
// stays uniform.
func (s *PredictionService) predictRaw(ctx context.Context, instruction, groundingContext string) (*models.RawPrediction, error) {
	if s.invoker == nil {
		return nil, models.NewInferenceError(models.InferenceProviderError, fmt.Errorf("no provider configured"))
	}

	ictx, cancel := context.WithTimeout(ctx, s.cfg.InferenceTimeout)
	defer cancel()

	return s.invoker.Predict(ictx, instruction, groundingContext)
}

// runFallback never fails: the predictor itself degrades to a neutral
// result on any data error.
func (s *PredictionService) runFallback(ctx context.Context, req models.PredictionRequest) *models.PredictionResult {
	if s.fallback == nil {
		return predictor.Neutral()
	}
	fctx, cancel := context.WithTimeout(ctx, s.cfg.FallbackTimeout)
	defer cancel()
	return s.fallback.Predict(fctx, req.HomeTeam, req.AwayTeam, req.League)
}

// renderTemplate substitutes fixture placeholders into the instruction text
func renderTemplate(text string, req models.PredictionRequest) string {
	return strings.NewReplacer(
		"{home_team}", req.HomeTeam,
		"{away_team}", req.AwayTeam,
		"{league}", req.League,
	).Replace(text)
}
