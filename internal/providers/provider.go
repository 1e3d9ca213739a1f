// internal/providers/provider.go

// Package providers defines the interface for chat-completion backends used
// by skills. Implementations live in subpackages (e.g., inference).
package providers

import "context"

// ChatMessage represents a single message in a chat conversation.
// It contains the role of the message sender (e.g., "user", "assistant") and the message content.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a message with the user role.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// ChatParams holds generation parameters. Nil pointers are left to the
// server's defaults.
type ChatParams struct {
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
}

// ChatRequest encapsulates a single non-streaming chat completion.
type ChatRequest struct {
	Model    string
	Messages []ChatMessage
	Params   ChatParams
}

// ChatResponse is the assistant reply plus the reason generation stopped.
type ChatResponse struct {
	Message      ChatMessage
	FinishReason string
}

// ChatProvider is the interface that all chat backends must implement.
type ChatProvider interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
