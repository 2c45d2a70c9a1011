package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// FallbackPredictor is an interface that abstracts the statistical fallback
// This allows for easier testing and mocking
type FallbackPredictor interface {
	Predict(ctx context.Context, home, away, league string) *models.PredictionResult
}
