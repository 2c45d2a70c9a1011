package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// Predictor generates one match prediction
type Predictor interface {
	GeneratePrediction(ctx context.Context, req models.PredictionRequest) (*models.PredictionResult, error)
}

// PredictionHandler handles HTTP requests for match predictions
type PredictionHandler struct {
	service Predictor
	logger  zerolog.Logger
}

// NewPredictionHandler creates a new prediction HTTP handler
func NewPredictionHandler(service Predictor, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/predictions - Generate a prediction for one fixture
	mux.HandleFunc("/api/v1/predictions", h.handleCreatePrediction)
}

// handleCreatePrediction handles POST /api/v1/predictions
func (h *PredictionHandler) handleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.GeneratePrediction(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		// The pipeline degrades internally; any other error here is a bug
		h.logger.Error().Err(err).Msg("unexpected prediction failure")
		h.errorResponse(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, PredictionResponse{
		MatchID:  req.MatchID,
		League:   req.League,
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
		Result:   *result,
	})
}

// jsonResponse writes a JSON response
func (h *PredictionHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *PredictionHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

// PredictionResponse represents the API response for one prediction
type PredictionResponse struct {
	MatchID  string                  `json:"match_id,omitempty"`
	League   string                  `json:"league,omitempty"`
	HomeTeam string                  `json:"home_team"`
	AwayTeam string                  `json:"away_team"`
	Result   models.PredictionResult `json:"result"`
}
