package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fadcv/fadcv/internal/schema"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the CV with a JSON document",
	Long: `Validate a JSON CV document and replace the current CV with it. Fields the
file leaves out take their default values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		if err := schema.Validate(data); err != nil {
			return err
		}
		doc, err := storage.Decode(data)
		if err != nil {
			return fmt.Errorf("%w: %v", schema.ErrInvalidDocument, err)
		}

		a := getApp(cmd)
		doc = a.Workspace.Replace(doc)
		if !a.Workspace.Flush() {
			return fmt.Errorf("imported document could not be saved")
		}
		fmt.Printf("✓ Imported CV for %s\n", valueStyle.Render(displayName(doc.PersonalInfo.FullName)))
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the CV as JSON",
	Example: `  fadcv dump > cv.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(getApp(cmd).Workspace.Document())
	},
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dumpCmd)
}
