package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadcv/fadcv/internal/app"
	"github.com/spf13/cobra"
)

// application is kept so Execute can flush and close it on exit
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "fadcv",
	Short: "Build a CV from the command line and export it to PDF",
	Long: `FadCV keeps a single CV document on disk and lets you edit it section by
section, reorder and hide sections, preview it in a browser and export it
as a paginated A4 PDF.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		a, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		application = a

		// Store app in command context
		cmd.SetContext(app.NewContext(cmd.Context(), a))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetContext(ctx)
	err := rootCmd.Execute()

	// Cleanup: flush pending edits and close app resources
	if application != nil {
		application.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// getApp returns the App stored by PersistentPreRunE
func getApp(cmd *cobra.Command) *app.App {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		fail("%v", err)
	}
	return a
}

// fail prints an error and exits. Pending edits are flushed first.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error "+format+"\n", args...)
	if application != nil {
		application.Close()
	}
	os.Exit(1)
}
