package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RealZimboGuy/epochtick/internal/domain"
	"github.com/RealZimboGuy/epochtick/internal/engine"
	"github.com/RealZimboGuy/epochtick/internal/util"
)

// TickerClient handles API calls to the epochtick daemon.
type TickerClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewTickerClient(baseURL, apiKey string) *TickerClient {
	return &TickerClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError represents an error response from the daemon.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Status sends GET /api/ticker.
func (c *TickerClient) Status() (*engine.Status, error) {
	return doJSON[engine.Status](c, http.MethodGet, "/api/ticker")
}

// Stop sends POST /api/ticker/stop.
func (c *TickerClient) Stop() (*engine.Status, error) {
	return doJSON[engine.Status](c, http.MethodPost, "/api/ticker/stop")
}

// Start sends POST /api/ticker/start, resuming the last run's engines.
func (c *TickerClient) Start() (*engine.Status, error) {
	return doJSON[engine.Status](c, http.MethodPost, "/api/ticker/start")
}

// Runs sends GET /api/runs.
func (c *TickerClient) Runs(limit int) ([]*domain.EpochRun, error) {
	runs, err := doJSON[[]*domain.EpochRun](c, http.MethodGet, fmt.Sprintf("/api/runs?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	return *runs, nil
}

func doJSON[T any](c *TickerClient, method, path string) (*T, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Add("X-API-Key", c.APIKey)
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	result, err := util.DecodeJSONBodyResponse[T](resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}
