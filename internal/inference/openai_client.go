package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// completer is the slice of the OpenAI client this invoker needs
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds generative provider settings
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client invokes the generative provider with a strict structured-output
// contract. Every failure is classified (RateLimited, ProviderError,
// MalformedOutput) so the orchestrator can route to the fallback.
type Client struct {
	api    completer
	cfg    Config
	logger zerolog.Logger
}

// NewClient creates an OpenAI-backed inference client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	return &Client{
		api:    openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: logger.With().Str("component", "inference_client").Logger(),
	}
}

// Predict sends the instruction template plus grounding context to the
// provider and parses its structured response. The grounding section is
// omitted entirely when the context is empty.
func (c *Client) Predict(ctx context.Context, template, groundingContext string) (*models.RawPrediction, error) {
	prompt := template
	if groundingContext != "" {
		prompt = template + "\n\nMATCH CONTEXT:\n" + groundingContext
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		kind := classifyProviderError(err)
		c.logger.Error().Err(err).Str("kind", string(kind)).Msg("provider call failed")
		return nil, models.NewInferenceError(kind, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("provider returned no choices")
		c.logger.Error().Msg("provider returned empty choices")
		return nil, models.NewInferenceError(models.InferenceMalformedOutput, err)
	}

	raw, err := parseRawPrediction(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to parse provider output")
		return nil, models.NewInferenceError(models.InferenceMalformedOutput, err)
	}

	c.logger.Debug().
		Str("outcome", raw.Outcome).
		Msg("parsed provider prediction")

	return raw, nil
}

// classifyProviderError maps transport errors onto the fallback taxonomy
func classifyProviderError(err error) models.InferenceErrorKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return models.InferenceRateLimited
		}
		if apiErr.Code == "insufficient_quota" {
			return models.InferenceRateLimited
		}
	}
	return models.InferenceProviderError
}

// parseRawPrediction decodes the provider's JSON, tolerating markdown fences
func parseRawPrediction(content string) (*models.RawPrediction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw models.RawPrediction
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if !models.Outcome(raw.Outcome).Valid() {
		return nil, fmt.Errorf("response outcome %q is not a known value", raw.Outcome)
	}

	return &raw, nil
}
