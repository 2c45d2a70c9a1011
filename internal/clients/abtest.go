package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// ABTestClient lists active experiments from the experimentation service.
// Arm assignment itself is computed locally (see prompt.AssignArm) because
// the service does not guarantee stable assignments per match.
type ABTestClient struct {
	baseURL string
	http    *HTTPClient
	logger  zerolog.Logger
}

// NewABTestClient creates an A/B testing client
func NewABTestClient(baseURL string, httpClient *HTTPClient, logger zerolog.Logger) *ABTestClient {
	return &ABTestClient{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger.With().Str("component", "ab_test_client").Logger(),
	}
}

// experimentsResponse mirrors the service's list envelope
type experimentsResponse struct {
	Experiments []models.Experiment `json:"experiments"`
}

// ActiveExperiments returns experiments currently in ACTIVE status
func (c *ABTestClient) ActiveExperiments(ctx context.Context) ([]models.Experiment, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("ab testing service not configured")
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/experiments?status=ACTIVE", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build experiments request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("experiments request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ab testing service returned status %d", resp.StatusCode)
	}

	var parsed experimentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode experiments response: %w", err)
	}

	active := make([]models.Experiment, 0, len(parsed.Experiments))
	for _, exp := range parsed.Experiments {
		if exp.Status == models.ExperimentStatusActive {
			active = append(active, exp)
		}
	}

	c.logger.Debug().
		Int("count", len(active)).
		Msg("fetched active experiments")

	return active, nil
}
