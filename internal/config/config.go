package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Review queue backends.
const (
	ReviewBackendMemory = "memory"
	ReviewBackendStore  = "store"
	ReviewBackendRedis  = "redis"
	ReviewBackendHTTP   = "http"
)

// Config holds application configuration.
type Config struct {
	DBPath string
	Addr   string

	// APIBaseURL is the remote learn backend. Empty means lessons come from
	// the local catalog.
	APIBaseURL  string
	UseMockData bool
	ContentDir  string

	ReviewBackend string
	RedisAddr     string

	// PacingDelay is how long answer feedback stays on screen before the
	// next step is shown. Zero moves on immediately.
	PacingDelay time.Duration
	SessionTTL  time.Duration

	LogMode string
	LogFile string

	LLM LLM
}

// LLM selects the assistant's language model. Provider is empty when none
// is configured and the assistant falls back to canned replies.
type LLM struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	// Timeout bounds one assistant turn, retries included.
	Timeout time.Duration
}

// Enabled reports whether a provider was selected.
func (l LLM) Enabled() bool {
	return l.Provider != ""
}

// vendorKeys are tried in order when FINKO_LLM_PROVIDER is unset.
var vendorKeys = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:          ":8443",
		UseMockData:   true,
		ReviewBackend: ReviewBackendStore,
		RedisAddr:     "localhost:6379",
		PacingDelay:   500 * time.Millisecond,
		SessionTTL:    30 * time.Minute,
		LogMode:       "dev",
		LLM: LLM{
			MaxTokens: 512,
			Timeout:   30 * time.Second,
		},
	}
}

// Load reads an optional .env file and then FINKO_* environment variables.
// A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment on top of Default.
func FromEnv() (Config, error) {
	d := Default()
	cfg := Config{
		DBPath:        getEnv("FINKO_DB", d.DBPath),
		Addr:          getEnv("FINKO_ADDR", d.Addr),
		APIBaseURL:    strings.TrimRight(getEnv("FINKO_API_BASE_URL", d.APIBaseURL), "/"),
		UseMockData:   getEnvBool("FINKO_USE_MOCK_DATA", d.UseMockData),
		ContentDir:    getEnv("FINKO_CONTENT_DIR", d.ContentDir),
		ReviewBackend: strings.ToLower(getEnv("FINKO_REVIEW_BACKEND", d.ReviewBackend)),
		RedisAddr:     getEnv("FINKO_REDIS_ADDR", d.RedisAddr),
		PacingDelay:   time.Duration(getEnvInt("FINKO_PACING_MS", int(d.PacingDelay/time.Millisecond))) * time.Millisecond,
		SessionTTL:    getEnvDuration("FINKO_SESSION_TTL", d.SessionTTL),
		LogMode:       getEnv("FINKO_LOG_MODE", d.LogMode),
		LogFile:       getEnv("FINKO_LOG_FILE", d.LogFile),
		LLM:           llmFromEnv(d.LLM),
	}
	return cfg, cfg.Validate()
}

// llmFromEnv reads FINKO_LLM_PROVIDER and that provider's
// FINKO_<PROVIDER>_API_KEY, _MODEL and _BASE_URL. Without an explicit
// provider the first vendor API key found selects one.
func llmFromEnv(d LLM) LLM {
	l := LLM{
		Provider:  strings.ToLower(getEnv("FINKO_LLM_PROVIDER", d.Provider)),
		MaxTokens: getEnvInt("FINKO_LLM_MAX_TOKENS", d.MaxTokens),
		Timeout:   getEnvDuration("FINKO_LLM_TIMEOUT", d.Timeout),
	}
	if l.Provider == "" {
		for _, v := range vendorKeys {
			if key := os.Getenv(v.env); key != "" {
				l.Provider = v.provider
				l.APIKey = key
				break
			}
		}
		return l
	}
	prefix := "FINKO_" + strings.ToUpper(l.Provider) + "_"
	l.APIKey = getEnv(prefix+"API_KEY", "")
	l.Model = getEnv(prefix+"MODEL", "")
	l.BaseURL = getEnv(prefix+"BASE_URL", "")
	return l
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.ReviewBackend {
	case ReviewBackendMemory, ReviewBackendStore, ReviewBackendRedis:
	case ReviewBackendHTTP:
		if c.APIBaseURL == "" {
			return fmt.Errorf("FINKO_API_BASE_URL is required for the http review backend")
		}
	default:
		return fmt.Errorf("unknown review backend: %q", c.ReviewBackend)
	}
	if !c.UseMockData && c.APIBaseURL == "" {
		return fmt.Errorf("FINKO_API_BASE_URL is required when FINKO_USE_MOCK_DATA is false")
	}
	if c.PacingDelay < 0 {
		return fmt.Errorf("FINKO_PACING_MS must not be negative")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("FINKO_LLM_MAX_TOKENS must be positive")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("FINKO_LLM_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
