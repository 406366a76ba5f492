package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fadcv/fadcv/internal/completion"
	"github.com/fadcv/fadcv/internal/database"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize your CV",
	Long:  "Show each section with its entry count and visibility, plus save status and storage location",
	Run: func(cmd *cobra.Command, args []string) {
		a := getApp(cmd)
		doc := a.Workspace.Document()

		fmt.Println(titleStyle.Render("Your CV"))
		fmt.Printf("%s %s\n", labelStyle.Render("Name:"), valueStyle.Render(displayName(doc.PersonalInfo.FullName)))
		fmt.Printf("%s %s, %s, %s\n\n", labelStyle.Render("Template:"),
			doc.Settings.Template, doc.Settings.AccentColor, doc.Settings.FontSize)

		for _, o := range doc.SectionOrder {
			count, known := sectionCount(doc, o.ID)
			if !known {
				continue
			}
			label := valueStyle.Render(o.Label)
			if !o.Visible {
				label = mutedStyle.Render(o.Label + " (hidden)")
			}
			fmt.Printf("  • %-28s %d\n", label, count)
		}

		fmt.Printf("\n%s %d%%\n", labelStyle.Render("Completion:"), completion.Score(doc))
		fmt.Printf("%s %s\n", labelStyle.Render("Save status:"), a.Workspace.SaveStatus())
		fmt.Printf("%s %s\n", labelStyle.Render("Export:"), a.Exporter.State())
		fmt.Printf("%s %s\n", labelStyle.Render("Storage:"), filepath.Join(a.Config.DataDir, database.FileName))
	},
}

// sectionCount returns the number of entries shown by a section. Summary
// counts as one entry when it has text.
func sectionCount(doc models.Document, id string) (int, bool) {
	switch id {
	case models.SectionSummary:
		if doc.Summary.Text != "" {
			return 1, true
		}
		return 0, true
	case models.SectionExperience:
		return len(doc.Experience), true
	case models.SectionEducation:
		return len(doc.Education), true
	case models.SectionSkill:
		return len(doc.Skill), true
	case models.SectionOrganization:
		return len(doc.Organization), true
	case models.SectionProject:
		return len(doc.Project), true
	case models.SectionCertificate:
		return len(doc.Certificate), true
	}
	if cs, ok := doc.CustomSection(id); ok {
		return len(cs.Items), true
	}
	return 0, false
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
