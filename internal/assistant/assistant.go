// Package assistant implements the finance chat assistant.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finko/finko/internal/llm"
	"github.com/finko/finko/internal/logger"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderIA   Sender = "ia"
)

// ErrEmptyMessage is returned when the learner sends only whitespace.
var ErrEmptyMessage = errors.New("empty message")

// Message is one entry of the chat history.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Assistant keeps one conversation and answers learner messages, through a
// chat model when one is configured and from canned replies otherwise.
type Assistant struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	history []Message
}

// New creates an assistant. A nil provider selects canned replies.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Assistant {
	if log == nil {
		log = logger.Nop()
	}
	a := &Assistant{provider: provider, cfg: cfg, log: log, now: time.Now}
	a.history = a.initialMessages()
	return a
}

func (a *Assistant) initialMessages() []Message {
	return []Message{{
		ID:        "init1",
		Text:      greeting,
		Sender:    SenderIA,
		Timestamp: a.now().Add(-time.Minute),
	}}
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Message(nil), a.history...)
}

// Send appends the learner's message and the assistant's reply to the
// history and returns the reply. Provider failures produce an apology reply
// rather than an error.
func (a *Assistant) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	a.mu.Lock()
	a.history = append(a.history, Message{
		ID:        "msg-" + uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: a.now(),
	})
	prior := append([]Message(nil), a.history...)
	a.mu.Unlock()

	reply := Message{ID: "ia-msg-" + uuid.NewString(), Sender: SenderIA}
	answer, err := a.answer(ctx, text, prior)
	if err != nil {
		a.log.Warn("assistant reply failed", "error", err)
		reply.ID = "err-" + uuid.NewString()
		answer = apologies
	}
	reply.Text = answer
	reply.Timestamp = a.now()

	a.mu.Lock()
	a.history = append(a.history, reply)
	a.mu.Unlock()
	return reply, nil
}

func (a *Assistant) answer(ctx context.Context, text string, history []Message) (string, error) {
	if a.provider == nil {
		return CannedReply(text), nil
	}
	resp, err := a.provider.Chat(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    a.toLLM(history),
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// toLLM converts the tail of the history into model messages. The greeting
// is skipped since the system prompt already sets the scene.
func (a *Assistant) toLLM(history []Message) []llm.Message {
	if len(history) > 0 && history[0].ID == "init1" {
		history = history[1:]
	}
	if limit := a.cfg.HistoryLimit; limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == SenderIA {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Text})
	}
	return out
}

// Clear drops the conversation and restores the greeting.
func (a *Assistant) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = a.initialMessages()
}
