package types

import "context"

// Message is a single role-tagged turn in a chat completion request
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// CompletionRequest is a structured chat request sent to the model endpoint
type CompletionRequest struct {
	System      string    `json:"system"`
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Complete sends a chat completion request and returns the raw model text
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsHealthy checks if the LLM provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
