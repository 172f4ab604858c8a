package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestOpenAICompleteSendsChatRequest(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		captured = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Add metrics to your impact bullets.  "}}]}`))
	}))
	defer server.Close()

	svc := NewOpenAIService("sk-test", server.URL+"/v1/", "gpt-3.5-turbo", 5*time.Second)
	req := NewPromptBuilder(400, 0.6).BuildCritiquePrompt("resume text", "job text")

	text, err := svc.Complete(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "  Add metrics to your impact bullets.  ", text)
	assert.Equal(t, "gpt-3.5-turbo", gjson.Get(captured, "model").String())
	assert.Equal(t, int64(400), gjson.Get(captured, "max_tokens").Int())
	assert.InDelta(t, 0.6, gjson.Get(captured, "temperature").Float(), 0.0001)
	assert.Equal(t, "system", gjson.Get(captured, "messages.0.role").String())
	assert.Equal(t, resumeReviewerInstruction, gjson.Get(captured, "messages.0.content").String())
	assert.Equal(t, "user", gjson.Get(captured, "messages.1.role").String())
	assert.Contains(t, gjson.Get(captured, "messages.1.content").String(), "resume text")
}

func TestOpenAICompleteFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "api error",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided"}}`,
			wantMsg: "Incorrect API key provided",
		},
		{
			name:    "outage without body",
			status:  http.StatusServiceUnavailable,
			body:    ``,
			wantMsg: "status 503",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantMsg: "no choices",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `<html>gateway</html>`,
			wantMsg: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewOpenAIService("sk-test", server.URL, "gpt-3.5-turbo", 5*time.Second)
			_, err := svc.Complete(context.Background(), CompletionRequest{System: "s", User: "u", MaxTokens: 10})

			var remoteErr *RemoteServiceError
			require.True(t, errors.As(err, &remoteErr))
			assert.Equal(t, "openai", remoteErr.Provider)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestOpenAICompleteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	svc := NewOpenAIService("sk-test", url, "gpt-3.5-turbo", time.Second)
	_, err := svc.Complete(context.Background(), CompletionRequest{System: "s", User: "u", MaxTokens: 10})

	var remoteErr *RemoteServiceError
	require.True(t, errors.As(err, &remoteErr))
}
