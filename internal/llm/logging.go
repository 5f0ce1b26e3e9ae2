package llm

import (
	"context"
	"time"

	"github.com/finko/finko/internal/logger"
)

// LoggingProvider is a decorator that logs every chat request.
type LoggingProvider struct {
	inner Provider
	log   *logger.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, log: log.With("component", "llm", "model", p.ModelID())}
}

func (l *LoggingProvider) Chat(ctx context.Context, req Request) (*Reply, error) {
	start := time.Now()
	reply, err := l.inner.Chat(ctx, req)
	latency := time.Since(start)

	if err != nil {
		l.log.Warn("llm request failed",
			"messages", len(req.Messages), "latency_ms", latency.Milliseconds(), "error", err)
		return nil, err
	}
	l.log.Debug("llm request",
		"messages", len(req.Messages),
		"latency_ms", latency.Milliseconds(),
		"input_tokens", reply.Usage.InputTokens,
		"output_tokens", reply.Usage.OutputTokens,
	)
	return reply, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
