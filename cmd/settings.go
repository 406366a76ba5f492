package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fadcv/fadcv/internal/editor"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Choose the template, accent color and font size",
}

var showSettingsCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current template settings",
	Run: func(cmd *cobra.Command, args []string) {
		s := getApp(cmd).Workspace.Document().Settings
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(s.AccentColor)).Render("    ")

		fmt.Println(titleStyle.Render("Template Settings"))
		fmt.Printf("%s %s\n", labelStyle.Render("Template:"), valueStyle.Render(string(s.Template)))
		fmt.Printf("%s %s %s\n", labelStyle.Render("Accent:"), swatch, valueStyle.Render(s.AccentColor))
		fmt.Printf("%s %s\n", labelStyle.Render("Font Size:"), valueStyle.Render(string(s.FontSize)))

		presets := make([]string, len(models.AccentPresets))
		for i, c := range models.AccentPresets {
			presets[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("● " + c)
		}
		fmt.Printf("\n%s %s\n", mutedStyle.Render("Presets:"), strings.Join(presets, "  "))
	},
}

var setSettingsCmd = &cobra.Command{
	Use:   "set",
	Short: "Update template settings",
	Example: `  fadcv settings set --template minimal
  fadcv settings set --accent "#2563eb" --font-size lg`,
	Run: func(cmd *cobra.Command, args []string) {
		tmpl, _ := cmd.Flags().GetString("template")
		accent, _ := cmd.Flags().GetString("accent")
		size, _ := cmd.Flags().GetString("font-size")

		if tmpl == "" && accent == "" && size == "" {
			fmt.Println("No settings to update. Use --template, --accent or --font-size.")
			return
		}
		doc, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.SetSettings(d, models.Template(tmpl), accent, models.FontSize(size))
		})
		if err != nil {
			fail("updating settings: %v", err)
		}
		s := doc.Settings
		fmt.Printf("✓ Settings updated: %s, %s, %s\n", s.Template, s.AccentColor, s.FontSize)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(showSettingsCmd)
	settingsCmd.AddCommand(setSettingsCmd)

	templates := make([]string, len(models.Templates))
	for i, t := range models.Templates {
		templates[i] = string(t)
	}
	setSettingsCmd.Flags().String("template", "", "Template: "+strings.Join(templates, ", "))
	setSettingsCmd.Flags().String("accent", "", "Accent color as #rrggbb")
	setSettingsCmd.Flags().String("font-size", "", "Font size: sm, md, lg")
}
