package llm

// Re-export provider types so callers only import this package
import "resumeforge/internal/llm/types"

type Message = types.Message
type CompletionRequest = types.CompletionRequest
type Provider = types.Provider
