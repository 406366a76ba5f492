package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fadcv/fadcv/internal/editor"
	"github.com/fadcv/fadcv/internal/render"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var collectionsHelp = "Collections: " + strings.Join(editor.Collections, ", ")

var addCmd = &cobra.Command{
	Use:   "add <collection> key=value...",
	Short: "Add an entry to a CV section",
	Long: `Add an entry to one of the repeatable sections. Keys are the field names of
the entry, for example company, position, startDate (YYYY-MM) and current.

` + collectionsHelp,
	Example: `  fadcv add experience company=Acme position="Backend Engineer" startDate=2021-03 current=true
  fadcv add education institution="MIT" degree=BSc field="Computer Science" startDate=2016-09 endDate=2020-06
  fadcv add skill name=Go level=5
  fadcv add skill name=Spanish level=3 category=Language`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: editor.Collections,
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := editor.ParseFields(args[1:])
		if err != nil {
			fail("%v", err)
		}
		id := storage.GenerateID()
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.Add(d, args[0], id, fields)
		}); err != nil {
			fail("adding %s: %v", args[0], err)
		}
		fmt.Printf("✓ Added %s %s\n", args[0], id)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <collection> <id> key=value...",
	Short: "Change fields of an entry",
	Example: `  fadcv update experience 0190c1d2-... current=false endDate=2024-01
  fadcv update skill 0190c1d2-... level=4`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := editor.ParseFields(args[2:])
		if err != nil {
			fail("%v", err)
		}
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.Update(d, args[0], args[1], fields)
		}); err != nil {
			fail("updating %s: %v", args[0], err)
		}
		fmt.Printf("✓ Updated %s %s\n", args[0], args[1])
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <collection> <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an entry",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.Remove(d, args[0], args[1])
		}); err != nil {
			fail("removing %s: %v", args[0], err)
		}
		fmt.Printf("✓ Removed %s %s\n", args[0], args[1])
	},
}

var listCmd = &cobra.Command{
	Use:       "list <collection>",
	Aliases:   []string{"ls"},
	Short:     "List the entries of a section",
	Long:      "List the entries of a section.\n\n" + collectionsHelp,
	Args:      cobra.ExactArgs(1),
	ValidArgs: editor.Collections,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := editor.Records(getApp(cmd).Workspace.Document(), args[0])
		if err != nil {
			fail("%v", err)
		}
		if len(records) == 0 {
			fmt.Printf("No %s entries yet. Add one with 'fadcv add %s key=value...'\n", args[0], args[0])
			return
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(mutedStyle).
			Headers("ID", "Entry", "Details")
		for _, r := range records {
			id, entry, dates := describe(r)
			t.Row(id, entry, dates)
		}
		fmt.Println(titleStyle.Render(strings.ToUpper(args[0][:1]) + args[0][1:]))
		fmt.Println(t)
	},
}

// describe returns the id, a one-line summary and the dates or level of a record
func describe(r any) (string, string, string) {
	join := func(parts ...string) string {
		out := parts[:0]
		for _, p := range parts {
			if p != "" {
				out = append(out, p)
			}
		}
		return strings.Join(out, " · ")
	}
	switch v := r.(type) {
	case models.Experience:
		return v.ID, join(v.Position, v.Company, v.Location), render.DateRange(v.StartDate, v.EndDate, v.Current)
	case models.Education:
		return v.ID, join(v.Institution, v.Degree, v.Field), render.DateRange(v.StartDate, v.EndDate, v.Current)
	case models.Organization:
		return v.ID, join(v.Name, v.Role), render.DateRange(v.StartDate, v.EndDate, v.Current)
	case models.Project:
		return v.ID, join(v.Name, v.Role, v.Technologies), render.DateRange(v.StartDate, v.EndDate, false)
	case models.Certificate:
		return v.ID, join(v.Name, v.Issuer), render.FormatDate(v.Date)
	case models.Skill:
		return v.ID, join(v.Name, v.Category), strings.Repeat("●", v.Level) + strings.Repeat("○", models.MaxSkillLevel-v.Level)
	case models.CustomItem:
		return v.ID, join(v.Title, v.Subtitle), v.Date
	}
	return "", fmt.Sprint(r), ""
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
}
