package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gradusapp/gradus/internal/spacedrep"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due <learner-id>",
	Short: "Show due spaced-repetition reviews for a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upcoming, _ := cmd.Flags().GetInt("upcoming")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		m, err := s.LearnerRepo().Load(context.Background(), args[0])
		if err != nil {
			return err
		}

		due := spacedrep.DueReviews(m, upcoming, time.Now())
		if len(due) == 0 {
			fmt.Println("No reviews due.")
			return nil
		}

		fmt.Printf("%-24s  %-8s  %-8s  %-5s  %-5s  %s\n",
			"Concept", "Due In", "Overdue", "Reps", "EF", "Mastery")
		fmt.Println(strings.Repeat("─", 68))
		for _, d := range due {
			fmt.Printf("%-24s  %-8d  %-8d  %-5d  %-5.2f  %.2f\n",
				d.ConceptID, d.DaysUntilDue, d.DaysOverdue,
				d.Repetitions, d.EaseFactor, d.MasteryScore)
		}
		return nil
	},
}

func init() {
	dueCmd.Flags().IntP("upcoming", "u", 0, "Include reviews due within N days")
}
