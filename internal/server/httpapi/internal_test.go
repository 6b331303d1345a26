package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternal_NotConfigured(t *testing.T) {
	ts := newTestServer(t, "")

	resp, body := doJSON(t, ts, http.MethodPost, "/internal/user/context", "",
		map[string]any{"user_id": 1}, map[string]string{"x-internal-key": "anything"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "internal API not configured", body["error"])
}

func TestInternal_WrongKey(t *testing.T) {
	ts := newTestServer(t, "secret")

	resp, _ := doJSON(t, ts, http.MethodPost, "/internal/user/context", "",
		map[string]any{"user_id": 1}, map[string]string{"x-internal-key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// missing header entirely
	resp, _ = doJSON(t, ts, http.MethodPost, "/internal/user/context", "",
		map[string]any{"user_id": 1}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInternal_ToolRoundTrip(t *testing.T) {
	ts := newTestServer(t, "secret")
	key := map[string]string{"x-internal-key": "secret"}

	_, userID := signup(t, ts, "agent-user@example.com")

	// save a message on the user's behalf
	resp, body := doJSON(t, ts, http.MethodPost, "/internal/message/save", "",
		map[string]any{"user_id": userID, "role": "user", "content": "imported check-in"}, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msgID := body["message_id"].(float64)
	assert.NotZero(t, msgID)

	// save events tied to it
	resp, body = doJSON(t, ts, http.MethodPost, "/internal/events/save", "",
		map[string]any{
			"user_id":           userID,
			"source_message_id": msgID,
			"events": []map[string]any{
				{"event_type": "symptom", "title": "Low energy", "tags": []string{"fatigue"}},
			},
		}, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["saved"])

	// merge memory
	resp, body = doJSON(t, ts, http.MethodPost, "/internal/memory/merge", "",
		map[string]any{
			"user_id": userID,
			"patch":   map[string]any{"known_triggers": []string{"caffeine"}},
		}, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	memory := body["memory"].(map[string]any)
	assert.Equal(t, []any{"caffeine"}, memory["known_triggers"])

	// store an externally produced report
	resp, body = doJSON(t, ts, http.MethodPost, "/internal/daily/save", "",
		map[string]any{
			"user_id": userID,
			"date":    "2026-08-29",
			"report":  map[string]any{"pattern_summary": []string{"steady week"}},
		}, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-08-29", body["date"])

	// context reflects all of it
	resp, body = doJSON(t, ts, http.MethodPost, "/internal/user/context", "",
		map[string]any{"user_id": userID}, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["messages"], 1)
	assert.Len(t, body["events"], 1)
	assert.NotNil(t, body["latest_report"])

	// unknown users are a 404, not a silent write
	resp, _ = doJSON(t, ts, http.MethodPost, "/internal/demo/seed", "",
		map[string]any{"user_id": 99999}, key)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInternal_DemoSeed(t *testing.T) {
	ts := newTestServer(t, "secret")
	key := map[string]string{"x-internal-key": "secret"}

	_, userID := signup(t, ts, "seed@example.com")

	resp, body := doJSON(t, ts, http.MethodPost, "/internal/demo/seed", "",
		map[string]any{"user_id": userID}, key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["messages"])
	assert.Equal(t, float64(3), body["events"])
}
