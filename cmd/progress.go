package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fadcv/fadcv/internal/completion"
	"github.com/spf13/cobra"
)

const barWidth = 30

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how complete your CV is",
	Run: func(cmd *cobra.Command, args []string) {
		a := getApp(cmd)
		score := completion.Score(a.Workspace.Document())
		tier := completion.TierFor(score)

		filled := score * barWidth / 100
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(tier.Color)).Render(strings.Repeat("█", filled)) +
			mutedStyle.Render(strings.Repeat("░", barWidth-filled))

		fmt.Println(titleStyle.Render("CV Progress"))
		fmt.Printf("%s %3d%%  %s\n", bar, score, lipgloss.NewStyle().Foreground(lipgloss.Color(tier.Color)).Bold(true).Render(tier.Label))
		fmt.Printf("%s %s\n", labelStyle.Render("Save status:"), valueStyle.Render(a.Workspace.SaveStatus().String()))
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
