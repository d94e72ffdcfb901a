package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WeddingBot_Go/internal/testing/leaktest"
)

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastRespectsFilter(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	all := hub.Register(nil)
	onlyWinners := hub.Register([]string{EventTypeNewWinner, " "})
	waitForClients(t, hub, 2)

	hub.Broadcast(EventTypeState, map[string]int{"version": 3})
	hub.Broadcast(EventTypeNewWinner, map[string]string{"drawId": "d1"})

	got := <-all.EventChannel
	assert.Equal(t, EventTypeState, got.Type)
	got = <-all.EventChannel
	assert.Equal(t, EventTypeNewWinner, got.Type)

	got = <-onlyWinners.EventChannel
	assert.Equal(t, EventTypeNewWinner, got.Type)
	assert.JSONEq(t, `{"drawId":"d1"}`, string(got.Payload))

	select {
	case extra := <-onlyWinners.EventChannel:
		t.Fatalf("filtered client received %s", extra.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	client := hub.Register(nil)
	waitForClients(t, hub, 1)
	hub.Unregister(client.ID)

	_, ok := <-client.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StopClosesClientsAndLeavesNoGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	hub := NewHub()
	hub.Start()
	client := hub.Register(nil)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, ok := <-client.EventChannel
	assert.False(t, ok)
	checker.Check(0)
}

func TestFormatSSEMessage(t *testing.T) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: "draw_failed", Message: "persistence failure"})
	require.NoError(t, err)

	msg, err := FormatSSEMessage(evt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(msg), "\n\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id: "+evt.ID, lines[0])
	assert.Equal(t, "event: error", lines[1])

	var frame struct {
		Type    string       `json:"type"`
		Payload ErrorPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[2], "data: ")), &frame))
	assert.Equal(t, "error", frame.Type)
	assert.Equal(t, "draw_failed", frame.Payload.Code)
}
