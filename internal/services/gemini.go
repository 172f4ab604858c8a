package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGeminiService creates a Gemini-backed completion service. An empty
// baseURL uses the public Gemini API endpoint.
func NewGeminiService(ctx context.Context, apiKey, modelName, baseURL string, timeout time.Duration) (CompletionService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

func (g *geminiService) Name() string {
	return "gemini"
}

func (g *geminiService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
		MaxOutputTokens:   int32(req.MaxTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.User), config)
	if err != nil {
		return "", &RemoteServiceError{Provider: g.Name(), Err: fmt.Errorf("failed to generate text: %w", err)}
	}

	if resp == nil {
		return "", &RemoteServiceError{Provider: g.Name(), Err: fmt.Errorf("no response generated (nil response)")}
	}
	if len(resp.Candidates) == 0 {
		return "", &RemoteServiceError{Provider: g.Name(), Err: fmt.Errorf("no candidates in response")}
	}

	return resp.Text(), nil
}
