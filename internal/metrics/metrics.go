package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PredictionsTotal counts finished predictions by path and outcome.
// Path is "inference" or "fallback".
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "match_predictor_predictions_total",
		Help: "Total predictions served, by producing path and outcome",
	},
	[]string{"path", "outcome"},
)

// FallbacksTotal counts fallback activations by trigger
var FallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "match_predictor_fallbacks_total",
		Help: "Total fallback activations, by inference error kind",
	},
	[]string{"reason"},
)

// ContextOmissionsTotal counts grounding-context sub-sources dropped
// after a fetch failure
var ContextOmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "match_predictor_context_omissions_total",
		Help: "Total context sub-sources omitted due to collaborator failures",
	},
	[]string{"source"},
)

// InvalidInputsTotal counts rejected requests
var InvalidInputsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "match_predictor_invalid_inputs_total",
		Help: "Total requests rejected for missing team names",
	},
)

// PredictionDuration observes end-to-end pipeline latency
var PredictionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "match_predictor_prediction_duration_seconds",
		Help:    "End-to-end prediction pipeline latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	},
)
