package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionPayload struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

// openAIService talks to any OpenAI-compatible chat completions endpoint.
type openAIService struct {
	client *resty.Client
	model  string
}

func NewOpenAIService(apiKey, baseURL, model string, timeout time.Duration) CompletionService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &openAIService{
		client: client,
		model:  model,
	}
}

func (s *openAIService) Name() string {
	return "openai"
}

func (s *openAIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	payload := chatCompletionPayload{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", &RemoteServiceError{Provider: s.Name(), Err: fmt.Errorf("request failed: %w", err)}
	}

	body := resp.String()
	if resp.IsError() {
		message := gjson.Get(body, "error.message").String()
		if message == "" {
			message = resp.Status()
		}
		return "", &RemoteServiceError{
			Provider: s.Name(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), message),
		}
	}

	if !gjson.Valid(body) {
		return "", &RemoteServiceError{Provider: s.Name(), Err: fmt.Errorf("malformed response body")}
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		return "", &RemoteServiceError{Provider: s.Name(), Err: fmt.Errorf("no choices in response")}
	}

	return content.String(), nil
}
