package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrap_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With("lesson_id", "u1s1l1")

	l.Warn("step not found", "step_id", "x")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "step not found", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "u1s1l1", fields["lesson_id"])
	assert.Equal(t, "x", fields["step_id"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", 1)
	l.With("a", "b").Error("ignored")
	l.Sync()
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		t.Run(mode, func(t *testing.T) {
			l, err := New(mode, "")
			require.NoError(t, err)
			require.NotNil(t, l.SugaredLogger)
		})
	}
}
