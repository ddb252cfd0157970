package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ConnexxBot_Backend/internal/config"
	"ConnexxBot_Backend/internal/models"
	"ConnexxBot_Backend/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(context.Background(), config.ModelConfig{
		APIKey:     "test-key",
		Name:       "gemini-2.0-flash",
		EmbedModel: "text-embedding-004",
		MaxRetries: maxRetries,
	}, WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	client.SetBackoff(time.Millisecond)
	return client
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			}},
		},
	})
}

func TestGenerate_SendsSystemHistoryAndInput(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		writeCandidate(w, "Hi Sam! Let's get moving.")
	}, 0)

	reply, err := client.Generate(context.Background(), prompt.Prompt{
		System: "be a fitness bot",
		Turns:  []models.Turn{models.UserTurn("hello"), models.AssistantTurn("hey")},
		Input:  "plan please",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Sam! Let's get moving.", reply)

	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].(map[string]any)["role"])
	assert.Equal(t, "model", contents[1].(map[string]any)["role"])
	assert.Equal(t, "user", contents[2].(map[string]any)["role"])
	assert.Contains(t, string(mustJSON(t, body["systemInstruction"])), "be a fitness bot")
}

func TestGenerate_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`)
			return
		}
		writeCandidate(w, "ok")
	}, 2)

	reply, err := client.Generate(context.Background(), prompt.Prompt{Input: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerate_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`)
	}, 2)

	_, err := client.Generate(context.Background(), prompt.Prompt{Input: "hi"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[]}`)
	}, 0)

	_, err := client.Generate(context.Background(), prompt.Prompt{Input: "hi"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func writeStreamChunks(w http.ResponseWriter, chunks ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	for _, chunk := range chunks {
		b, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": chunk}},
				}},
			},
		})
		fmt.Fprintf(w, "data: %s\n\n", b)
	}
}

func TestStream_RetriesBeforeFirstChunk(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:streamGenerateContent"), r.URL.Path)
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			io.WriteString(w, `{"error":{"code":429,"message":"slow down","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		writeStreamChunks(w, "Here is ", "your plan.")
	}, 2)

	var got []string
	err := client.Stream(context.Background(), prompt.Prompt{Input: "plan"}, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Here is ", "your plan."}, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestStream_NoRetryAfterChunkDelivered(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeStreamChunks(w, "partial")
	}, 2)

	errClosed := errors.New("client went away")
	err := client.Stream(context.Background(), prompt.Prompt{Input: "plan"}, func(chunk string) error {
		return errClosed
	})
	assert.ErrorIs(t, err, errClosed)
	assert.Equal(t, int32(1), calls.Load())
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
