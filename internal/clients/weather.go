package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// WeatherClient fetches a compact venue weather summary. It is an advisory
// collaborator: callers omit the weather section when it errors.
type WeatherClient struct {
	baseURL string
	http    *HTTPClient
	logger  zerolog.Logger
}

// NewWeatherClient creates a weather client. An empty baseURL disables it.
func NewWeatherClient(baseURL string, httpClient *HTTPClient, logger zerolog.Logger) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger.With().Str("component", "weather_client").Logger(),
	}
}

// GetBrief returns the current conditions for a city
func (c *WeatherClient) GetBrief(ctx context.Context, city string) (*models.WeatherBrief, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("weather provider not configured")
	}

	params := url.Values{}
	params.Add("city", city)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var brief models.WeatherBrief
	if err := json.NewDecoder(resp.Body).Decode(&brief); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	c.logger.Debug().
		Str("city", city).
		Str("condition", brief.Condition).
		Msg("fetched weather brief")

	return &brief, nil
}
