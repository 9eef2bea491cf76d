package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"

// systemInstruction pins the assistant to medical topics regardless of what
// the conversation drifts into.
const systemInstruction = `You are a Medical Assistant. You only respond to medical queries ` +
	`and provide assistance related to healthcare. Do not engage in any other topics. ` +
	`Listen the user carefully and give a preliminary diagnosis. ` +
	`If the user asks about something outside of healthcare, politely ` +
	`redirect them back to medical topics. If the diagnosis is not clear, ` +
	`ask for more information. ` +
	`If the diagnosis is serious, suggest they see a doctor. ` +
	`Keep the response concise and focused on the medical issue.`

// HistoryEntry is one line of conversation passed to the model.
type HistoryEntry struct {
	Role    string
	Message string
}

// Responder produces an assistant reply for a conversation history.
// Implementations may be slow and may fail; callers own the fallback.
type Responder interface {
	Respond(ctx context.Context, history []HistoryEntry) (string, error)
}

type geminiChatParts struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []*geminiChatParts `json:"parts"`
	Role  string             `json:"role"`
}

type geminiChatRequest struct {
	Contents []*geminiChatContent `json:"contents"`
}

type geminiChatCandidate struct {
	Content *geminiChatContent `json:"content"`
}

type geminiChatResponse struct {
	Candidates []*geminiChatCandidate `json:"candidates"`
}

// GeminiResponder calls the Gemini generateContent API over plain HTTP.
// The client and key are injected once at process start.
type GeminiResponder struct {
	apiKey   string
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

type GeminiOption func(*GeminiResponder)

// WithEndpoint overrides the API URL, used by tests to point at a local server.
func WithEndpoint(url string) GeminiOption {
	return func(r *GeminiResponder) {
		r.endpoint = url
	}
}

func WithHTTPClient(client *http.Client) GeminiOption {
	return func(r *GeminiResponder) {
		r.client = client
	}
}

func WithTimeout(d time.Duration) GeminiOption {
	return func(r *GeminiResponder) {
		r.timeout = d
	}
}

func NewGeminiResponder(apiKey string, opts ...GeminiOption) *GeminiResponder {
	r := &GeminiResponder{
		apiKey:   apiKey,
		client:   &http.Client{},
		endpoint: geminiEndpoint,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// formatHistory flattens the conversation into "role: message" lines.
func formatHistory(history []HistoryEntry) string {
	lines := make([]string, len(history))
	for i, h := range history {
		lines[i] = fmt.Sprintf("%s: %s", h.Role, h.Message)
	}
	return strings.Join(lines, "\n")
}

// Respond makes a single attempt against the model. No retries: a failure
// here is turned into a fallback message by the gateway.
func (r *GeminiResponder) Respond(ctx context.Context, history []HistoryEntry) (string, error) {
	prompt := fmt.Sprintf("%s\n\nConversation:\n%s\n\nResponse:", systemInstruction, formatHistory(history))

	payload := geminiChatRequest{
		Contents: []*geminiChatContent{
			{
				Parts: []*geminiChatParts{{Text: prompt}},
				Role:  "user",
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
