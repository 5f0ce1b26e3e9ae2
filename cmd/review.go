package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Inspect the review queue",
}

var reviewStatusCmd = &cobra.Command{
	Use:   "status <lesson-id>",
	Short: "Show how many missed steps are waiting for review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.queue.Status(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("review status: %w", err)
		}
		if !st.HasPending {
			fmt.Printf("%s: nothing to review\n", args[0])
			return nil
		}
		fmt.Printf("%s: %d pending, next %s\n", args[0], st.PendingCount, st.NextStepID)
		return nil
	},
}

var reviewResetCmd = &cobra.Command{
	Use:   "reset <lesson-id>",
	Short: "Clear the review queue of a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.queue.Reset(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("review reset: %w", err)
		}
		fmt.Printf("%s: review queue cleared\n", args[0])
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewStatusCmd)
	reviewCmd.AddCommand(reviewResetCmd)
}
