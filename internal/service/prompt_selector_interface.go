package service

import (
	"context"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// PromptSelector is an interface that abstracts prompt template resolution
// This allows for easier testing and mocking
type PromptSelector interface {
	Select(ctx context.Context, league, matchID string) models.PromptTemplate
}
