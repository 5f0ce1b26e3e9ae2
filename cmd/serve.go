package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = e.cfg.Addr
		}
		origins, _ := cmd.Flags().GetStringSlice("allow-origin")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Deps{
			Content:      e.content,
			Queue:        e.queue,
			Engine:       e.engine,
			Assistant:    newAssistant(ctx, e.cfg.LLM, e.log),
			Learn:        e.learn,
			Log:          e.log,
			SessionTTL:   e.cfg.SessionTTL,
			AllowOrigins: origins,
		})
		e.log.Info("serving", "addr", addr, "review_backend", e.cfg.ReviewBackend)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides FINKO_ADDR)")
	serveCmd.Flags().StringSlice("allow-origin", nil, "Browser origin allowed by CORS (repeatable)")
}
