package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/config"
	"github.com/finko/finko/internal/content"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse and check lesson content",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		provider, err := newContent(cfg)
		if err != nil {
			return err
		}
		lessons, err := provider.Lessons(cmd.Context())
		if err != nil {
			return fmt.Errorf("list lessons: %w", err)
		}
		if len(lessons) == 0 {
			fmt.Println("No lessons found.")
			return nil
		}

		fmt.Printf("%-10s  %-5s  %s\n", "ID", "Steps", "Title")
		fmt.Println(strings.Repeat("─", 60))
		for _, l := range lessons {
			fmt.Printf("%-10s  %-5d  %s\n", l.ID, l.StepCount, l.Title)
		}
		fmt.Printf("\n%d lessons\n", len(lessons))
		return nil
	},
}

var lessonsValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check a directory of lesson files",
	Long: `Parse every YAML lesson file in a directory, check it against the lesson
schema and validate its steps. Exits non-zero on the first broken file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := content.LoadDir(args[0], version)
		if err != nil {
			return err
		}
		lessons, err := catalog.Lessons(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range lessons {
			fmt.Printf("ok  %-10s  %d steps\n", l.ID, l.StepCount)
		}
		return nil
	},
}

func init() {
	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsValidateCmd)
}
