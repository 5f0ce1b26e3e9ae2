package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [lesson-id]",
	Short: "Open the lesson player",
	Long: `Open the terminal lesson player. With a lesson id the lesson starts
right away; otherwise the lesson list is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID := ""
		if len(args) == 1 {
			lessonID = args[0]
		}
		return runApp(cmd, lessonID)
	},
}
