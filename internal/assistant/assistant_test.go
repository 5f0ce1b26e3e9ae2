package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/finko/finko/internal/llm"
	"github.com/finko/finko/internal/logger"
)

func TestNew_Greets(t *testing.T) {
	a := New(nil, DefaultConfig(), nil)
	history := a.History()
	require.Len(t, history, 1)
	assert.Equal(t, greeting, history[0].Text)
	assert.Equal(t, SenderIA, history[0].Sender)
}

func TestCannedReply(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Hola Finko", "¡Hola! ¿En qué puedo ayudarte?"},
		{"¿Qué es el AHORRO?", cannedReplies[4].reply},
		{"diferencia entre gasto e ingreso", cannedReplies[2].reply},
		{"quiero invertir", cannedReplies[3].reply},
		{"hola, ¿qué es un presupuesto?", "¡Hola! ¿En qué puedo ayudarte?"},
		{"¿cuánto cuesta un auto?", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, CannedReply(tt.text))
		})
	}
}

func TestSend_CannedConversation(t *testing.T) {
	a := New(nil, DefaultConfig(), nil)

	reply, err := a.Send(context.Background(), "  gracias  ")
	require.NoError(t, err)
	assert.Equal(t, "¡De nada! Estoy aquí para ayudarte.", reply.Text)

	history := a.History()
	require.Len(t, history, 3)
	assert.Equal(t, "gracias", history[1].Text)
	assert.Equal(t, SenderUser, history[1].Sender)
	assert.Equal(t, reply, history[2])
}

func TestSend_RejectsEmpty(t *testing.T) {
	a := New(nil, DefaultConfig(), nil)
	_, err := a.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, a.History(), 1)
}

func TestSend_UsesProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Un fondo de emergencia cubre imprevistos."})
	a := New(mock, DefaultConfig(), nil)

	reply, err := a.Send(context.Background(), "¿qué es un fondo de emergencia?")
	require.NoError(t, err)
	assert.Equal(t, "Un fondo de emergencia cubre imprevistos.", reply.Text)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, systemPrompt, req.System)
	require.Len(t, req.Messages, 1, "greeting is not sent to the model")
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
}

func TestSend_ProviderFailureApologises(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	a := New(mock, DefaultConfig(), logger.Wrap(zap.New(core)))

	reply, err := a.Send(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, apologies, reply.Text)
	assert.Contains(t, reply.ID, "err-")
	assert.Equal(t, 1, logs.FilterMessage("assistant reply failed").Len())
}

func TestSend_HistoryLimit(t *testing.T) {
	mock := llm.NewMockProvider()
	for range 4 {
		mock.AddResponse(llm.MockResponse{Text: "ok"})
	}
	cfg := DefaultConfig()
	cfg.HistoryLimit = 3
	a := New(mock, cfg, nil)

	for _, q := range []string{"uno", "dos", "tres", "cuatro"} {
		_, err := a.Send(context.Background(), q)
		require.NoError(t, err)
	}
	last := mock.Calls[3].Messages
	require.Len(t, last, 3)
	assert.Equal(t, "tres", last[0].Content)
	assert.Equal(t, llm.RoleAssistant, last[1].Role)
	assert.Equal(t, "cuatro", last[2].Content)
}

func TestClear(t *testing.T) {
	a := New(nil, DefaultConfig(), nil)
	_, _ = a.Send(context.Background(), "hola")
	a.Clear()
	history := a.History()
	require.Len(t, history, 1)
	assert.Equal(t, greeting, history[0].Text)
}
