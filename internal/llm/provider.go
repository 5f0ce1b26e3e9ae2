// Package llm is the chat-model abstraction behind the finance assistant.
package llm

import "context"

// Provider answers a conversation with one text reply.
type Provider interface {
	Chat(ctx context.Context, req Request) (*Reply, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one chat turn.
type Request struct {
	// System sets the assistant's role and constraints.
	System string

	// Messages is the conversation so far, oldest first, ending with the
	// learner's latest message.
	Messages []Message

	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message is one entry of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Reply is the model's answer.
type Reply struct {
	Text  string
	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalised to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full model IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
