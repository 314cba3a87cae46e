package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gradusapp/gradus/internal/learner"
	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard <name>",
	Short: "Create a new learner profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, _ := cmd.Flags().GetString("course")
		concept, _ := cmd.Flags().GetString("concept")
		interests, _ := cmd.Flags().GetStringSlice("interests")
		style, _ := cmd.Flags().GetString("style")
		prior, _ := cmd.Flags().GetString("prior-knowledge")
		practice, _ := cmd.Flags().GetBool("practice")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		m := learner.New(learner.Profile{
			Name:           args[0],
			Interests:      interests,
			LearningStyle:  style,
			PriorKnowledge: prior,
		}, course, concept, time.Now())
		m.PracticeMode = practice

		if err := s.LearnerRepo().Save(context.Background(), m); err != nil {
			return fmt.Errorf("save learner: %w", err)
		}

		fmt.Printf("Created learner %s\n", args[0])
		fmt.Printf("ID: %s\n", m.ID)
		if course != "" {
			fmt.Printf("Course: %s (starting at %s)\n", course, concept)
		}
		return nil
	},
}

func init() {
	onboardCmd.Flags().String("course", "", "Course to enroll in")
	onboardCmd.Flags().String("concept", "", "First concept of the course")
	onboardCmd.Flags().StringSlice("interests", nil, "Comma-separated interests used to personalize content")
	onboardCmd.Flags().String("style", "", "Preferred learning style (e.g. visual, verbal)")
	onboardCmd.Flags().String("prior-knowledge", "", "Free-form prior knowledge description")
	onboardCmd.Flags().Bool("practice", false, "Start in practice mode; answers are evaluated but progress is not recorded")
}
