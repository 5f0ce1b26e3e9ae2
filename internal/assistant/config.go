package assistant

// Config holds assistant reply settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// HistoryLimit caps how many prior messages are sent to the model.
	HistoryLimit int
}

// DefaultConfig returns sensible defaults for the finance assistant.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    512,
		Temperature:  0.4,
		HistoryLimit: 20,
	}
}
