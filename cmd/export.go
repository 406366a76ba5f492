package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadcv/fadcv/internal/export"
	"github.com/fadcv/fadcv/internal/render"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your CV as an A4 PDF",
	Long: `Render the CV with the selected template, capture it in a headless browser
and write a paginated A4 PDF named after your full name.`,
	Example: `  fadcv export
  fadcv export --out ~/Desktop
  fadcv export --html cv.html   # write the rendered page instead`,
	Run: func(cmd *cobra.Command, args []string) {
		a := getApp(cmd)
		doc := a.Workspace.Document()

		if htmlPath, _ := cmd.Flags().GetString("html"); htmlPath != "" {
			writeHTML(doc, htmlPath)
			return
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = a.Config.OutputDir
		}

		progress := &exportProgress{title: export.Title(doc)}
		start := time.Now()
		ctx := export.WithProgress(cmd.Context(), progress.SetStage)
		res, err := a.Exporter.Export(ctx, doc, export.DirDeliverer{Dir: out})
		if err != nil {
			progress.Error(err)
			if errors.Is(err, export.ErrRasterize) {
				fmt.Println(mutedStyle.Render("  Is Chrome installed? Set chrome_path or auto_download_browser with 'fadcv config set'."))
			}
			fail("exporting CV: %v", err)
		}

		progress.Complete(res.Name)
		fmt.Printf("  %s %s\n", labelStyle.Render("File:"), res.Location)
		fmt.Printf("  %s %d, %s, %s\n", labelStyle.Render("Pages:"),
			res.Pages, kilobytes(res.Size), time.Since(start).Round(time.Millisecond))
	},
}

// exportProgress rewrites a single status line as the export advances
type exportProgress struct {
	title string
}

func (p *exportProgress) SetStage(s export.Stage) {
	fmt.Printf("\r\033[K⏳ %s: %s...", p.title, s)
}

func (p *exportProgress) Complete(name string) {
	fmt.Printf("\r\033[K✓ Exported %s\n", name)
}

func (p *exportProgress) Error(err error) {
	fmt.Printf("\r\033[K✗ %s: %v\n", p.title, err)
}

func writeHTML(doc models.Document, path string) {
	html, err := render.Render(doc, render.Options{})
	if err != nil {
		fail("rendering CV: %v", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fail("creating %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		fail("writing %s: %v", path, err)
	}
	fmt.Printf("✓ Preview written to %s\n", path)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Directory to write the PDF to (default: output_dir)")
	exportCmd.Flags().String("html", "", "Write the rendered HTML preview to this file instead of exporting")
}

func kilobytes(n int) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
