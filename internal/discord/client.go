package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// APIError is a non-2xx response from the lottery API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

// APIClient handles communication with the lottery API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	maxRetries int
	retryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: apiClientTimeout,
		},
		APIKey:     apiKey,
		maxRetries: apiMaxRetries,
		retryDelay: apiRetryDelay,
	}
}

// doRequest performs an HTTP request, retrying transport and 5xx failures
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + apiPrefix + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call performs the request and decodes a 2xx body into out
func (c *APIClient) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetState fetches the lottery state
func (c *APIClient) GetState() (*domain.LotteryState, error) {
	var state domain.LotteryState
	if err := c.call(http.MethodGet, "/lottery/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Draw runs a draw on behalf of adminID
func (c *APIClient) Draw(adminID string) (*domain.DrawResult, error) {
	var result domain.DrawResult
	if err := c.call(http.MethodPost, "/lottery/draw", domain.AdminRequest{AdminID: adminID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset clears the current draw and the draw lock
func (c *APIClient) Reset(adminID string) (*domain.LotteryState, error) {
	var state domain.LotteryState
	if err := c.call(http.MethodPut, "/lottery/control/reset", domain.AdminRequest{AdminID: adminID}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SetControl updates a single control field
func (c *APIClient) SetControl(adminID string, field domain.ControlField, value interface{}) (*domain.LotteryState, error) {
	req := domain.ControlRequest{Field: field, Value: value, AdminID: adminID}
	var state domain.LotteryState
	if err := c.call(http.MethodPost, "/lottery/control", req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// History lists the newest limit records
func (c *APIClient) History(limit int) ([]domain.HistoryRecord, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var list domain.HistoryList
	if err := c.call(http.MethodGet, "/lottery/history?"+params.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list.Records, nil
}

// Eligible lists the current eligible participants
func (c *APIClient) Eligible() (*domain.EligibleList, error) {
	var list domain.EligibleList
	if err := c.call(http.MethodGet, "/lottery/eligible", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
