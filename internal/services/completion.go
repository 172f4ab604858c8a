package services

import "context"

// CompletionRequest is one system + user exchange with generation limits.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// CompletionService generates text for a prompt. Implementations return the
// raw generated text; failures are returned as *RemoteServiceError.
type CompletionService interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
