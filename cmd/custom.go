package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fadcv/fadcv/internal/editor"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage custom sections",
	Long:  "Create your own sections (awards, publications, volunteering...) with free-form items",
}

var customAddCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Create a custom section",
	Example: `  fadcv custom add "Awards"`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := storage.GenerateID()
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.AddCustomSection(d, id, strings.Join(args, " "))
		}); err != nil {
			fail("adding section: %v", err)
		}
		fmt.Printf("✓ Added section %s\n", id)
	},
}

var customRenameCmd = &cobra.Command{
	Use:   "rename <section-id> <title>",
	Short: "Rename a custom section",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.RenameCustomSection(d, args[0], strings.Join(args[1:], " "))
		}); err != nil {
			fail("renaming section: %v", err)
		}
		fmt.Println("✓ Section renamed")
	},
}

var customRemoveCmd = &cobra.Command{
	Use:     "remove <section-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a custom section and its items",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.RemoveCustomSection(d, args[0])
		}); err != nil {
			fail("removing section: %v", err)
		}
		fmt.Println("✓ Section removed")
	},
}

var customListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List custom sections and their items",
	Run: func(cmd *cobra.Command, args []string) {
		doc := getApp(cmd).Workspace.Document()
		if len(doc.CustomSections) == 0 {
			fmt.Println("No custom sections yet. Create one with 'fadcv custom add <title>'")
			return
		}
		for _, cs := range doc.CustomSections {
			fmt.Println(titleStyle.Render(cs.Title) + " " + mutedStyle.Render(cs.ID))
			if len(cs.Items) == 0 {
				fmt.Println(mutedStyle.Render("  (no items)"))
				continue
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(mutedStyle).
				Headers("ID", "Item", "Date")
			for _, it := range cs.Items {
				id, entry, date := describe(it)
				t.Row(id, entry, date)
			}
			fmt.Println(t)
		}
	},
}

var customItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage the items of a custom section",
}

var customItemAddCmd = &cobra.Command{
	Use:     "add <section-id> key=value...",
	Short:   "Add an item (keys: title, subtitle, date, description)",
	Example: `  fadcv custom item add 0190c1d2-... title="Best Paper" subtitle="ACM SIGMOD" date=2023`,
	Args:    cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := editor.ParseFields(args[1:])
		if err != nil {
			fail("%v", err)
		}
		id := storage.GenerateID()
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.AddCustomItem(d, args[0], id, fields)
		}); err != nil {
			fail("adding item: %v", err)
		}
		fmt.Printf("✓ Added item %s\n", id)
	},
}

var customItemUpdateCmd = &cobra.Command{
	Use:   "update <section-id> <item-id> key=value...",
	Short: "Change fields of an item",
	Args:  cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := editor.ParseFields(args[2:])
		if err != nil {
			fail("%v", err)
		}
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.UpdateCustomItem(d, args[0], args[1], fields)
		}); err != nil {
			fail("updating item: %v", err)
		}
		fmt.Println("✓ Item updated")
	},
}

var customItemRemoveCmd = &cobra.Command{
	Use:     "remove <section-id> <item-id>",
	Aliases: []string{"rm"},
	Short:   "Remove an item",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.RemoveCustomItem(d, args[0], args[1])
		}); err != nil {
			fail("removing item: %v", err)
		}
		fmt.Println("✓ Item removed")
	},
}

func init() {
	rootCmd.AddCommand(customCmd)
	customCmd.AddCommand(customAddCmd)
	customCmd.AddCommand(customRenameCmd)
	customCmd.AddCommand(customRemoveCmd)
	customCmd.AddCommand(customListCmd)
	customCmd.AddCommand(customItemCmd)
	customItemCmd.AddCommand(customItemAddCmd)
	customItemCmd.AddCommand(customItemUpdateCmd)
	customItemCmd.AddCommand(customItemRemoveCmd)
}
