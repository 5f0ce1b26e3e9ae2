package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/config"
	"github.com/finko/finko/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the Finko assistant on the command line",
	Long: `Line-by-line conversation with the assistant. Uses the configured LLM
provider when one is available and canned answers otherwise. An empty line
or "salir" ends the conversation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		mode, _ := cmd.Flags().GetString("log-mode")
		if mode == "" {
			mode = cfg.LogMode
		}
		log, err := logger.New(mode, "")
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		ctx := cmd.Context()
		a := newAssistant(ctx, cfg.LLM, log)
		timeout := cfg.LLM.Timeout

		fmt.Println(a.History()[0].Text)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.EqualFold(text, "salir") {
				return nil
			}

			turnCtx, cancel := context.WithTimeout(ctx, timeout)
			reply, err := a.Send(turnCtx, text)
			cancel()
			if err != nil {
				return err
			}
			fmt.Println(reply.Text)
		}
	},
}
