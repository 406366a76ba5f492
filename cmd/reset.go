package cmd

import (
	"fmt"

	"github.com/fadcv/fadcv/internal/app"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all CV data and start over",
	Long:  "Discard the current CV and remove it from storage. This cannot be undone.",
	Example: `  fadcv reset --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("%w: pass --yes to delete all CV data", app.ErrConfirmationRequired)
		}
		getApp(cmd).Workspace.Reset(cmd.Context())
		fmt.Println("✓ All CV data deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm deleting all data")
}
