package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fadcv/fadcv/internal/editor"
	"github.com/fadcv/fadcv/internal/sections"
	"github.com/fadcv/fadcv/internal/workspace"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and arrange sections interactively",
	Long:  "Launch an interactive browser to inspect sections, show or hide them and change their order",
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(getApp(cmd).Workspace)
	},
}

func runTUI(ws *workspace.Workspace) {
	reader := bufio.NewReader(os.Stdin)

	for {
		doc := ws.Document()
		fmt.Println(titleStyle.Render("Section Browser"))
		fmt.Println("Press 'q' to quit, or enter a section number to view details")
		fmt.Println()

		for i, o := range doc.SectionOrder {
			count, _ := sectionCount(doc, o.ID)
			label := o.Label
			if !o.Visible {
				label = mutedStyle.Render(label + " (hidden)")
			}
			fmt.Printf("%d. %s [%d]\n", i+1, label, count)
		}

		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if err != nil || input == "q" || input == "Q" {
			break
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(doc.SectionOrder) {
			fmt.Println("Invalid selection")
			continue
		}
		displaySection(ws, n-1, reader)
	}
}

// displaySection shows one section and follows it while it is moved
func displaySection(ws *workspace.Workspace, index int, reader *bufio.Reader) {
	for {
		doc := ws.Document()
		if index >= len(doc.SectionOrder) {
			return
		}
		o := doc.SectionOrder[index]

		fmt.Println("\n" + strings.Repeat("=", 60))
		fmt.Println(titleStyle.Render(o.Label))
		fmt.Printf("%s %d of %d\n", labelStyle.Render("Position:"), index+1, len(doc.SectionOrder))
		fmt.Printf("%s %t\n", labelStyle.Render("Visible:"), o.Visible)
		printSectionEntries(doc, o.ID)

		fmt.Println("\nOptions:")
		fmt.Println("  [t] Show/hide this section")
		fmt.Println("  [u] Move up")
		fmt.Println("  [d] Move down")
		fmt.Println("  [b] Back to list")
		fmt.Print("\n> ")

		choice, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		choice = strings.TrimSpace(strings.ToLower(choice))

		to := index
		switch choice {
		case "t":
			ws.Update(func(d models.Document) (models.Document, error) {
				d.SectionOrder = sections.ToggleVisibility(d.SectionOrder, o.ID)
				return d, nil
			})
			continue
		case "u":
			to = index - 1
		case "d":
			to = index + 1
		case "b":
			return
		default:
			fmt.Println("Invalid choice")
			continue
		}
		if to < 0 || to >= len(doc.SectionOrder) {
			fmt.Println("Already at the edge")
			continue
		}
		ws.Update(func(d models.Document) (models.Document, error) {
			d.SectionOrder = sections.Reorder(d.SectionOrder, index, to)
			return d, nil
		})
		index = to
	}
}

func printSectionEntries(doc models.Document, id string) {
	if id == models.SectionSummary {
		if doc.Summary.Text != "" {
			fmt.Println(labelStyle.Render("\nSummary:"))
			fmt.Println(doc.Summary.Text)
		}
		return
	}

	var records []any
	if cs, ok := doc.CustomSection(id); ok {
		for _, it := range cs.Items {
			records = append(records, it)
		}
	} else {
		records, _ = editor.Records(doc, id)
	}
	if len(records) == 0 {
		fmt.Println(mutedStyle.Render("\nNo entries yet"))
		return
	}
	fmt.Println(labelStyle.Render("\nEntries:"))
	for _, r := range records {
		_, entry, details := describe(r)
		if details != "" {
			entry += mutedStyle.Render("  " + details)
		}
		fmt.Printf("  • %s\n", entry)
	}
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
