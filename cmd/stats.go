package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gradusapp/gradus/internal/calibration"
	"github.com/gradusapp/gradus/internal/spacedrep"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <learner-id>",
	Short: "Show mastery, calibration, and review statistics for a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		m, err := s.LearnerRepo().Load(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Learner: %s (%s)\n", m.Profile.Name, m.ID)
		if m.CurrentCourse != "" {
			fmt.Printf("Course:  %s, current concept %s\n", m.CurrentCourse, m.CurrentConcept)
		}
		fmt.Printf("Completed concepts: %d, total assessments: %d\n",
			m.Overall.ConceptsCompleted, m.Overall.TotalAssessments)

		// Per-concept mastery.
		ids := make([]string, 0, len(m.Concepts))
		for id := range m.Concepts {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		if len(ids) > 0 {
			fmt.Println()
			fmt.Printf("%-24s  %-8s  %-11s  %s\n", "Concept", "Mastery", "Assessments", "Completed")
			fmt.Println(strings.Repeat("─", 60))
			for _, id := range ids {
				cp := m.Concepts[id]
				done := ""
				if cp.Completed {
					done = "yes"
				}
				fmt.Printf("%-24s  %-8.2f  %-11d  %s\n",
					id, cp.MasteryScore, len(cp.Assessments), done)
			}
		}

		// Calibration across all concepts.
		var history []calibration.Record
		for _, id := range ids {
			history = append(history, m.Concepts[id].ConfidenceHistory...)
		}
		if len(history) > 0 {
			metrics := calibration.Overall(history)
			trend := calibration.DetectTrend(history, calibration.DefaultTrendWindow)

			fmt.Println()
			fmt.Println("Calibration")
			fmt.Println(strings.Repeat("─", 60))
			fmt.Printf("Accuracy:        %.2f over %d rated assessments\n",
				metrics.Accuracy, metrics.TotalAssessments)
			fmt.Printf("Calibrated:      %.0f%%\n", metrics.CalibratedRate*100)
			fmt.Printf("Overconfident:   %.0f%%\n", metrics.OverconfidentRate*100)
			fmt.Printf("Underconfident:  %.0f%%\n", metrics.UnderconfidentRate*100)
			fmt.Printf("Trend:           %s\n", trend)
		}

		// Review schedule.
		rs := spacedrep.ReviewStats(m, time.Now())
		fmt.Println()
		fmt.Println("Spaced Repetition")
		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("Scheduled concepts: %d of %d\n", rs.ReviewedConcepts, rs.TotalConcepts)
		fmt.Printf("Completed reviews:  %d (%.1f per concept)\n", rs.TotalReviews, rs.AvgReviewsPerConcept)
		fmt.Printf("Due today:          %d\n", rs.DueToday)
		fmt.Printf("Due this week:      %d\n", rs.DueThisWeek)

		// Content generation ledger.
		gs, err := s.EventRepo().GenerationStats(ctx)
		if err != nil {
			return fmt.Errorf("query generation stats: %w", err)
		}
		if gs.TotalCalls > 0 {
			fmt.Println()
			fmt.Println("Content Generation")
			fmt.Println(strings.Repeat("─", 60))
			fmt.Printf("Calls:    %d (%d failed)\n", gs.TotalCalls, gs.Failures)
			fmt.Printf("Tokens:   %d in / %d out\n", gs.InputTokens, gs.OutputTokens)
			fmt.Printf("Latency:  %.0fms avg\n", gs.AvgLatencyMs)
		}

		return nil
	},
}
