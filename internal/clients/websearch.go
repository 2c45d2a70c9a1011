package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// SearchClient fetches live web-search snippets for match grounding via a
// Custom-Search-shaped API. Advisory: errors just drop the section.
type SearchClient struct {
	baseURL  string
	apiKey   string
	engineID string
	http     *HTTPClient
	logger   zerolog.Logger
}

// NewSearchClient creates a web-search client. An empty apiKey disables it.
func NewSearchClient(baseURL, apiKey, engineID string, httpClient *HTTPClient, logger zerolog.Logger) *SearchClient {
	return &SearchClient{
		baseURL:  baseURL,
		apiKey:   apiKey,
		engineID: engineID,
		http:     httpClient,
		logger:   logger.With().Str("component", "search_client").Logger(),
	}
}

// searchResponse mirrors the provider's result envelope
type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search returns up to num ranked (title, snippet) results for the query
func (c *SearchClient) Search(ctx context.Context, query string, num int) ([]models.SearchSnippet, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search provider not configured")
	}
	if num <= 0 || num > 10 {
		num = 5
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("key", c.apiKey)
	params.Add("cx", c.engineID)
	params.Add("num", strconv.Itoa(num))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	snippets := make([]models.SearchSnippet, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		snippets = append(snippets, models.SearchSnippet{
			Title:   item.Title,
			Snippet: item.Snippet,
		})
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(snippets)).
		Msg("fetched search snippets")

	return snippets, nil
}
