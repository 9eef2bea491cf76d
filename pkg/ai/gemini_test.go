package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiResponder_Respond(t *testing.T) {
	var gotBody geminiChatRequest
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		res := geminiChatResponse{
			Candidates: []*geminiChatCandidate{
				{
					Content: &geminiChatContent{
						Parts: []*geminiChatParts{{Text: "Drink water and rest."}},
						Role:  "model",
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(res)
	}))
	defer server.Close()

	responder := NewGeminiResponder("test-key", WithEndpoint(server.URL))
	history := []HistoryEntry{
		{Role: "user", Message: "I have a headache"},
		{Role: "assistant", Message: "Since when?"},
		{Role: "user", Message: "Since this morning"},
	}

	reply, err := responder.Respond(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "Drink water and rest.", reply)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, gotBody.Contents, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Medical Assistant")
	assert.Contains(t, prompt, "user: I have a headache")
	assert.Contains(t, prompt, "assistant: Since when?")
}

func TestGeminiResponder_Respond_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	responder := NewGeminiResponder("bad-key", WithEndpoint(server.URL))
	_, err := responder.Respond(context.Background(), []HistoryEntry{{Role: "user", Message: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGeminiResponder_Respond_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	responder := NewGeminiResponder("test-key",
		WithEndpoint(server.URL),
		WithTimeout(20*time.Millisecond),
	)
	_, err := responder.Respond(context.Background(), []HistoryEntry{{Role: "user", Message: "hi"}})
	require.Error(t, err)
}

func TestGeminiResponder_Respond_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	responder := NewGeminiResponder("test-key", WithEndpoint(server.URL))
	_, err := responder.Respond(context.Background(), []HistoryEntry{{Role: "user", Message: "hi"}})
	require.Error(t, err)
}
