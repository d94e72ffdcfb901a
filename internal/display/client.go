package display

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

// API is the part of the lottery HTTP API a screen reads
type API interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Photos(ctx context.Context) ([]domain.Photo, error)
	Exclusions(ctx context.Context) (domain.ExclusionSet, error)
	Track(ctx context.Context) (*domain.TrackConfig, error)
}

// Snapshot is everything a poll needs to rebuild the view
type Snapshot struct {
	State  domain.LotteryState
	Latest *Draw
}

// Client reads the lottery API over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for baseURL
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPrefix+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrChannelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %d: %s", ErrMsgUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Snapshot fetches the state and enough history to rebuild the latest draw
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var state domain.LotteryState
	if err := c.get(ctx, pathState, &state); err != nil {
		return nil, err
	}

	limit := max(state.WinnersPerDraw, snapshotHistoryMin)
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var history domain.HistoryList
	if err := c.get(ctx, pathHistory+"?"+params.Encode(), &history); err != nil {
		return nil, err
	}

	return &Snapshot{
		State:  state,
		Latest: LatestDraw(history.Records, state.AnimationMode),
	}, nil
}

// Photos fetches the public photo universe
func (c *Client) Photos(ctx context.Context) ([]domain.Photo, error) {
	var list domain.PhotoList
	if err := c.get(ctx, pathPhotos, &list); err != nil {
		return nil, err
	}
	return list.Photos, nil
}

// Exclusions fetches the machine-mode exclusion set
func (c *Client) Exclusions(ctx context.Context) (domain.ExclusionSet, error) {
	var list domain.ExclusionList
	if err := c.get(ctx, pathExclusions, &list); err != nil {
		return nil, err
	}
	return domain.NewExclusionSetFromIDs(list.UserIDs), nil
}

// Track fetches the machine-mode flight path
func (c *Client) Track(ctx context.Context) (*domain.TrackConfig, error) {
	var track domain.TrackConfig
	if err := c.get(ctx, pathTrack, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// LatestDraw groups the newest records that belong to one draw. Records are
// newest first and one draw's records share a draw time. The draw id is the
// newest record's id, which the server stores as currentDrawId.
func LatestDraw(records []domain.HistoryRecord, mode domain.AnimationMode) *Draw {
	if len(records) == 0 {
		return nil
	}
	newest := records[0]
	var winners []domain.HistoryRecord
	for _, r := range records {
		if !r.DrawTime.Equal(newest.DrawTime) || r.AdminID != newest.AdminID {
			break
		}
		winners = append(winners, r)
	}
	// Restore draw order, oldest first
	for i, j := 0, len(winners)-1; i < j; i, j = i+1, j-1 {
		winners[i], winners[j] = winners[j], winners[i]
	}
	return &Draw{ID: newest.ID, Winners: winners, Mode: mode}
}
