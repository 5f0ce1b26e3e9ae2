package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "finko",
	Short: "Finance lessons in your terminal",
	Long:  "Finko: short personal-finance lessons with quizzes and a review round for the questions you miss.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FINKO_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log format: dev or prod (overrides FINKO_LOG_MODE)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FINKO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
