// api/handlers/events_handler_test.go
package handlers_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/versehub/versehub/api/handlers"
	"github.com/versehub/versehub/api/middleware"
	"github.com/versehub/versehub/internal/events"
	"github.com/versehub/versehub/internal/store"
)

// setupEventsServer wires an events handler with a short heartbeat so the
// test can observe one without waiting.
func setupEventsServer(t *testing.T) (*httptest.Server, *events.Broker, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	creds := store.NewCredentialStore()
	if err := creds.Seed(); err != nil {
		t.Fatalf("failed to seed credentials: %v", err)
	}
	broker := events.NewBroker()

	handler := handlers.NewEventsHandler(broker, creds, cfg)
	handler.Heartbeat = 50 * time.Millisecond

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/events/stream", handler.Stream)
	server := httptest.NewServer(router)

	return server, broker, server.Close
}

// readEvents scans SSE lines until `want` distinct event names were seen
// or the context expires.
func readEvents(t *testing.T, body *bufio.Scanner, want ...string) map[string]bool {
	t.Helper()
	seen := make(map[string]bool)
	deadline := time.Now().Add(5 * time.Second)

	for body.Scan() {
		line := body.Text()
		if strings.HasPrefix(line, "event:") {
			seen[strings.TrimSpace(strings.TrimPrefix(line, "event:"))] = true
		}
		remaining := false
		for _, name := range want {
			if !seen[name] {
				remaining = true
			}
		}
		if !remaining || time.Now().After(deadline) {
			break
		}
	}
	return seen
}

func TestEventStream(t *testing.T) {
	server, broker, cleanup := setupEventsServer(t)
	defer cleanup()

	assert := assert.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events/stream", nil)
	assert.NoError(err)

	res, err := http.DefaultClient.Do(req)
	assert.NoError(err)
	defer res.Body.Close()

	assert.Equal(http.StatusOK, res.StatusCode)
	assert.Contains(res.Header.Get("Content-Type"), "text/event-stream")
	assert.Equal("no-cache", res.Header.Get("Cache-Control"))

	// Give the stream a moment to subscribe, then publish.
	go func() {
		time.Sleep(100 * time.Millisecond)
		broker.Publish("course.created", map[string]any{"course_id": "c42"})
	}()

	scanner := bufio.NewScanner(res.Body)
	seen := readEvents(t, scanner, "connected", "heartbeat", "course.created")

	assert.True(seen["connected"], "expected the initial connected event")
	assert.True(seen["heartbeat"], "expected at least one heartbeat")
	assert.True(seen["course.created"], "expected the published event")
}

func TestEventStreamRejectsInvalidToken(t *testing.T) {
	server, _, cleanup := setupEventsServer(t)
	defer cleanup()

	res, err := http.Get(server.URL + "/events/stream?token=garbage")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Same generic message as every other token rejection.
	var body struct {
		Error string `json:"error"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "Invalid or expired authentication token.", body.Error)
}
