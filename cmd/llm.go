package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/config"
	"github.com/finko/finko/internal/llm"
	"github.com/finko/finko/internal/logger"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the assistant's language model",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which provider is configured and send it a test prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if !cfg.LLM.Enabled() {
			fmt.Println("No LLM provider configured; the assistant uses canned replies.")
			fmt.Println("Set FINKO_LLM_PROVIDER or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY.")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
		defer cancel()

		provider, err := llm.NewProvider(ctx, llmConfig(cfg.LLM), logger.Nop())
		if err != nil {
			return err
		}
		fmt.Printf("Provider:  %s\n", cfg.LLM.Provider)
		fmt.Printf("Model:     %s\n", provider.ModelID())

		start := time.Now()
		reply, err := provider.Chat(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Responde solo con la palabra: listo"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("test prompt: %w", err)
		}
		fmt.Printf("Latency:   %dms\n", time.Since(start).Milliseconds())
		fmt.Printf("Tokens:    %d in / %d out\n", reply.Usage.InputTokens, reply.Usage.OutputTokens)
		fmt.Printf("Reply:     %s\n", reply.Text)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
