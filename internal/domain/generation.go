package domain

import "context"

// Message roles understood by the generation service.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one role-tagged segment of a generation prompt.
type ChatMessage struct {
	Role    string
	Content string
}

// SystemMessage builds a system-role prompt segment.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role prompt segment.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// GenerationClient wraps a single call to an external text-completion
// service. Implementations own transport concerns only; retry and
// fallback policy belongs to the callers.
//
// Failures are reported as DomainError with one of the codes
// ErrLLMUnavailable (missing credential/config), ErrLLMTransport
// (network error or timeout), or ErrLLMUpstream (non-success status or
// unusable response body).
type GenerationClient interface {
	Complete(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error)
}
