package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// PromptOptimizerClient asks the prompt-optimization service for the
// best-performing template for a league. Advisory: any failure means
// "no override".
type PromptOptimizerClient struct {
	baseURL string
	http    *HTTPClient
	logger  zerolog.Logger
}

// NewPromptOptimizerClient creates a prompt optimizer client
func NewPromptOptimizerClient(baseURL string, httpClient *HTTPClient, logger zerolog.Logger) *PromptOptimizerClient {
	return &PromptOptimizerClient{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger.With().Str("component", "prompt_optimizer_client").Logger(),
	}
}

// bestTemplateResponse mirrors the optimizer's response body
type bestTemplateResponse struct {
	Template string `json:"template"`
}

// BestTemplate returns the best template for the league, or "" when the
// service has none.
func (c *PromptOptimizerClient) BestTemplate(ctx context.Context, league string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("prompt optimizer not configured")
	}

	params := url.Values{}
	params.Add("league", league)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/templates/best?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build optimizer request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("optimizer request failed: %w", err)
	}
	defer resp.Body.Close()

	// No template for this league yet
	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("optimizer returned status %d", resp.StatusCode)
	}

	var parsed bestTemplateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode optimizer response: %w", err)
	}

	c.logger.Debug().
		Str("league", league).
		Bool("has_template", parsed.Template != "").
		Msg("fetched best template")

	return parsed.Template, nil
}
