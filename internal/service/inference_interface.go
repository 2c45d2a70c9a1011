package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// InferenceInvoker is an interface that abstracts the generative provider
// This allows for easier testing and mocking
type InferenceInvoker interface {
	Predict(ctx context.Context, template, groundingContext string) (*models.RawPrediction, error)
}
