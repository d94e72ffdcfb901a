package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// FrameHandler handles one decoded frame
type FrameHandler func(evt Event) error

// StreamClient consumes the push endpoint and reconnects with exponential
// backoff. Handlers run on the reader goroutine and must not block.
type StreamClient struct {
	baseURL    string
	apiKey     string
	eventTypes []string
	handlers   map[string][]FrameHandler
	onStatus   func(connected bool, err error)
	httpClient *http.Client
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	connected  bool

	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewStreamClient creates a client for baseURL filtered to eventTypes
func NewStreamClient(baseURL, apiKey string, eventTypes []string) *StreamClient {
	return &StreamClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		eventTypes: eventTypes,
		handlers:   make(map[string][]FrameHandler),
		httpClient: &http.Client{
			Timeout: 0, // streams stay open
		},
		shutdown:       make(chan struct{}),
		initialBackoff: StreamInitialBackoff,
		maxBackoff:     StreamMaxBackoff,
	}
}

// OnEvent registers a handler for a frame type
func (c *StreamClient) OnEvent(eventType string, handler FrameHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// OnStatus registers a callback for connection changes. err is set when a
// connection attempt or an open stream fails.
func (c *StreamClient) OnStatus(fn func(connected bool, err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// Start begins the connection loop
func (c *StreamClient) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop shuts the client down and waits for the loop to exit
func (c *StreamClient) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)
	})
	c.wg.Wait()
}

// IsConnected reports whether a stream is currently open
func (c *StreamClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *StreamClient) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	// Cancel the in-flight request on Stop so a blocked read returns
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	backoff := c.initialBackoff
	failures := 0

	for {
		if ctx.Err() != nil {
			slog.Info(LogMsgStreamStopped)
			return
		}

		err := c.connect(ctx)
		if ctx.Err() != nil {
			c.setConnected(false, nil)
			slog.Info(LogMsgStreamStopped)
			return
		}

		if c.IsConnected() {
			backoff = c.initialBackoff
			failures = 0
		}
		failures++
		c.setConnected(false, err)
		slog.Warn(LogMsgStreamFailed, "error", err, "backoff", backoff, "consecutive_failures", failures)

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * StreamBackoffMultiplier)
			if backoff > c.maxBackoff {
				backoff = c.maxBackoff
			}
		case <-ctx.Done():
			slog.Info(LogMsgStreamStopped)
			return
		}
	}
}

func (c *StreamClient) setConnected(connected bool, err error) {
	c.mu.Lock()
	changed := c.connected != connected || err != nil
	c.connected = connected
	fn := c.onStatus
	c.mu.Unlock()

	if fn != nil && changed {
		fn(connected, err)
	}
}

func (c *StreamClient) streamURL() string {
	u := c.baseURL + StreamPath
	if len(c.eventTypes) > 0 {
		u += "?" + QueryParamTypes + "=" + url.QueryEscape(strings.Join(c.eventTypes, ","))
	}
	return u
}

func (c *StreamClient) connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.streamURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set(HeaderAPIKey, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %d: %s", ErrMsgStreamUnexpectedRes, resp.StatusCode, string(body))
	}

	c.setConnected(true, nil)
	slog.Info(LogMsgStreamConnected, "url", c.streamURL())

	return c.readFrames(resp.Body)
}

func (c *StreamClient) readFrames(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, StreamBufferSize), StreamBufferSize)

	var eventID, eventType, data string

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if data != "" {
				c.dispatch(eventID, eventType, data)
			}
			eventID, eventType, data = "", "", ""
			continue
		}

		switch {
		case strings.HasPrefix(line, "id: "):
			eventID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}
	return errors.New(ErrMsgStreamClosed)
}

func (c *StreamClient) dispatch(id, eventType, data string) {
	if eventType == EventTypeKeepalive || eventType == EventTypeConnected {
		return
	}

	var evt Event
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		slog.Warn(LogMsgStreamParseError, "error", err)
		return
	}
	if eventType != "" {
		evt.Type = eventType
	}
	if id != "" {
		evt.ID = id
	}

	c.mu.RLock()
	handlers := c.handlers[evt.Type]
	c.mu.RUnlock()

	for _, h := range handlers {
		if err := h(evt); err != nil {
			slog.Error(LogMsgStreamHandlerError, "event_type", evt.Type, "error", err)
		}
	}
}
