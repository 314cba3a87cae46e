package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <learner-id>",
	Short: "Delete a learner and all their progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("refusing to delete learner %s without --force", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.LearnerRepo().Delete(context.Background(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted learner %s\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Confirm deletion")
}
