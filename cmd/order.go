package cmd

import (
	"fmt"
	"strconv"

	"github.com/fadcv/fadcv/internal/sections"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Arrange and hide CV sections",
}

var orderListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the section order",
	Run: func(cmd *cobra.Command, args []string) {
		printOrder(getApp(cmd).Workspace.Document().SectionOrder)
	},
}

var orderMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a section to another position (positions start at 1)",
	Example: `  fadcv order move 3 1   # put the third section first`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		from, err1 := strconv.Atoi(args[0])
		to, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			fail("positions must be numbers")
		}
		doc, _ := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			d.SectionOrder = sections.Reorder(d.SectionOrder, from-1, to-1)
			return d, nil
		})
		printOrder(doc.SectionOrder)
	},
}

var orderToggleCmd = &cobra.Command{
	Use:   "toggle <section-id>",
	Short: "Show or hide a section",
	Example: `  fadcv order toggle organization`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, _ := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			d.SectionOrder = sections.ToggleVisibility(d.SectionOrder, args[0])
			return d, nil
		})
		if !hasSection(doc.SectionOrder, args[0]) {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("No section %q; order unchanged.", args[0])))
		}
		printOrder(doc.SectionOrder)
	},
}

func hasSection(order []models.SectionOrder, id string) bool {
	for _, o := range order {
		if o.ID == id {
			return true
		}
	}
	return false
}

func printOrder(order []models.SectionOrder) {
	fmt.Println(titleStyle.Render("Section Order"))
	for i, o := range order {
		mark, style := "✓", valueStyle
		if !o.Visible {
			mark, style = "✗", mutedStyle
		}
		fmt.Printf("  %2d. %s %s %s\n", i+1, mark, style.Render(o.Label), mutedStyle.Render(o.ID))
	}
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderMoveCmd)
	orderCmd.AddCommand(orderToggleCmd)
}
