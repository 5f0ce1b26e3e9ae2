package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finko/finko/internal/config"
	"github.com/finko/finko/internal/rewards"
	"github.com/finko/finko/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		stats, err := s.EventRepo().LessonStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No lessons played yet.")
			return nil
		}

		fmt.Printf("%-12s  %8s  %8s  %9s  %9s\n", "Lesson", "Answers", "Correct", "Accuracy", "Completed")
		fmt.Println(strings.Repeat("─", 56))
		var answers, correct, completed int
		for _, st := range stats {
			fmt.Printf("%-12s  %8d  %8d  %8.0f%%  %9d\n",
				st.LessonID, st.Answers, st.Correct, st.Accuracy()*100, st.Completed)
			answers += st.Answers
			correct += st.Correct
			completed += st.Completed
		}
		fmt.Println(strings.Repeat("─", 56))
		total := store.LessonStats{Answers: answers, Correct: correct}
		fmt.Printf("%-12s  %8d  %8d  %8.0f%%  %9d\n",
			"TOTAL", answers, correct, total.Accuracy()*100, completed)

		// Coins need lesson content; without it they read as zero.
		var lessons rewards.LessonSource
		if cfg, err := config.Load(); err == nil {
			if c, err := newContent(cfg); err == nil {
				lessons = c
			}
		}
		learner, err := rewards.NewService(s.EventRepo(), lessons).Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("compute rewards: %w", err)
		}
		fmt.Println()
		fmt.Printf("Coins: %d  Streak: %d day(s), longest %d, next goal %d  Levels: %d\n",
			learner.Coins, learner.CurrentStreak, learner.LongestStreak, learner.NextStreakGoal, learner.LevelsCompleted)
		for _, a := range learner.Achievements {
			mark := " "
			if a.Earned {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, a.Title)
		}
		return nil
	},
}
