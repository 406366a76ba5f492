package cmd

import (
	"fmt"
	"os"

	"github.com/fadcv/fadcv/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		for _, key := range config.Keys() {
			value := config.Get(key)
			if value == "" {
				value = mutedStyle.Render("(not set)")
			}
			fmt.Printf("%s %s\n", labelStyle.Render(key+":"), value)
		}
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  fadcv config set --key output_dir --value ~/Documents/cv
  fadcv config set --key chrome_path --value /usr/bin/chromium
  fadcv config set --key no_sandbox --value true
  fadcv config set --key autosave_delay --value 1s`,
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" {
			fmt.Println("--key is required")
			return
		}

		if err := config.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating config: %v\n", err)
			fmt.Fprintf(os.Stderr, "Valid keys: %v\n", config.Keys())
			os.Exit(1)
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)

		// Reload config
		if err := config.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not reload config: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
