package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/app"
	"github.com/finko/finko/internal/assistant"
	"github.com/finko/finko/internal/config"
	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/learn"
	"github.com/finko/finko/internal/llm"
	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/remote"
	"github.com/finko/finko/internal/review"
	"github.com/finko/finko/internal/rewards"
	"github.com/finko/finko/internal/screens/history"
	"github.com/finko/finko/internal/screens/player"
	"github.com/finko/finko/internal/store"
)

// env is everything a command needs, built from config and flags.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	redis   *goredis.Client
	content library
	queue   review.Queue
	engine  *progression.Engine
	rewards *rewards.Service
	learn   *learn.Service
}

// library is lesson content together with its curriculum.
type library interface {
	content.Provider
	content.CurriculumSource
}

// setup loads configuration and opens the backends. With tui set, logs go
// to a file so they don't draw over the screen.
func setup(cmd *cobra.Command, tui bool) (*env, error) {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.LogMode = m
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	cfg.DBPath = dbPath

	logFile := cfg.LogFile
	if tui && logFile == "" {
		logFile = filepath.Join(filepath.Dir(dbPath), "finko.log")
	}
	log, err := logger.New(cfg.LogMode, logFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	e := &env{cfg: cfg, log: log}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st

	if e.content, err = newContent(cfg); err != nil {
		e.Close()
		return nil, err
	}
	if e.queue, err = e.newQueue(ctx); err != nil {
		e.Close()
		return nil, err
	}
	events := st.EventRepo()
	e.engine = progression.NewEngine(e.content, e.queue, log, progression.WithJournal(events))
	e.rewards = rewards.NewService(events, e.content)
	e.learn = learn.NewService(e.content, e.content, e.rewards)
	return e, nil
}

// Close releases every backend setup opened.
func (e *env) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
	e.log.Sync()
}

func newContent(cfg config.Config) (library, error) {
	switch {
	case !cfg.UseMockData:
		return content.NewHTTPProvider(remote.NewClient(cfg.APIBaseURL, remote.Options{})), nil
	case cfg.ContentDir != "":
		c, err := content.LoadDir(cfg.ContentDir, version)
		if err != nil {
			return nil, fmt.Errorf("load lessons from %s: %w", cfg.ContentDir, err)
		}
		return c, nil
	default:
		c, err := content.LoadDefault(version)
		if err != nil {
			return nil, fmt.Errorf("load built-in lessons: %w", err)
		}
		return c, nil
	}
}

func (e *env) newQueue(ctx context.Context) (review.Queue, error) {
	switch e.cfg.ReviewBackend {
	case config.ReviewBackendMemory:
		return review.NewMemoryQueue(e.content), nil
	case config.ReviewBackendRedis:
		rdb, err := review.DialRedis(ctx, e.cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		e.redis = rdb
		return review.NewRedisQueue(rdb, e.content), nil
	case config.ReviewBackendHTTP:
		return review.NewHTTPQueue(remote.NewClient(e.cfg.APIBaseURL, remote.Options{})), nil
	default:
		return review.NewStoreQueue(e.store.ReviewRepo(), e.content), nil
	}
}

// newAssistant builds the chat assistant. Without a usable model it
// answers from canned replies.
func newAssistant(ctx context.Context, lc config.LLM, log *logger.Logger) *assistant.Assistant {
	acfg := assistant.DefaultConfig()
	acfg.MaxTokens = lc.MaxTokens
	if !lc.Enabled() {
		return assistant.New(nil, acfg, log)
	}
	provider, err := llm.NewProvider(ctx, llmConfig(lc), log)
	if err != nil {
		log.Warn("assistant model unavailable, using canned replies", "provider", lc.Provider, "error", err)
		provider = nil
	}
	return assistant.New(provider, acfg, log)
}

func llmConfig(lc config.LLM) llm.Config {
	return llm.Config{
		Provider: lc.Provider,
		APIKey:   lc.APIKey,
		Model:    lc.Model,
		BaseURL:  lc.BaseURL,
		Retry:    llm.DefaultRetry(),
	}
}

// runApp launches the terminal player, optionally straight into lessonID.
func runApp(cmd *cobra.Command, lessonID string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Player: player.Deps{
			Engine:  e.engine,
			Content: e.content,
			Pacing:  e.cfg.PacingDelay,
			Rewards: e.rewards,
			Log:     e.log,
		},
		Assistant: newAssistant(cmd.Context(), e.cfg.LLM, e.log),
		History:   history.Sources{Lessons: e.store.EventRepo(), Learn: e.learn},
		LessonID:  lessonID,
	})
}
