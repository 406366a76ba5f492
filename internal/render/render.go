// Package render turns a CV document into the HTML page that is previewed
// and rasterized for export. The CV itself is the element with id RootID.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fadcv/fadcv/internal/sections"
	"github.com/fadcv/fadcv/pkg/models"
)

// RootID is the id of the element that holds the rendered CV
const RootID = "cv-preview"

// PageWidth and PageHeight are the CSS pixel size of one A4 page at 96dpi
const (
	PageWidth  = 794
	PageHeight = 1123
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"px":     px,
	"levels": func() []int { return []int{1, 2, 3, 4, 5} },
}).ParseFS(templateFS, "templates/*.html"))

// Options controls page-level rendering
type Options struct {
	// Offscreen places the CV at left -10000px, the resting position the
	// export pipeline pins from and restores to.
	Offscreen bool
}

// Render renders doc with its configured template
func Render(doc models.Document, opts Options) (string, error) {
	return RenderTemplate(doc, doc.Settings.Template, opts)
}

// RenderTemplate renders doc with the given template. Unknown templates fall
// back to the modern layout.
func RenderTemplate(doc models.Document, tmpl models.Template, opts Options) (string, error) {
	if !tmpl.Valid() {
		tmpl = models.TemplateModern
	}
	v := newPage(doc, tmpl, opts)

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, string(tmpl), v); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl, err)
	}
	return buf.String(), nil
}

// page is the view model shared by all templates
type page struct {
	Root      string
	Offscreen bool
	Width     int
	Height    int
	Accent    template.CSS
	Base      float64

	Info     models.PersonalInfo
	Name     string
	JobTitle string
	Photo    template.URL
	Initial  string
	Contacts []string
	Skills   []models.Skill

	Blocks []block
}

// block is one rendered section
type block struct {
	Accent template.CSS
	Base   float64

	ID      string
	Kind    string
	Title   string
	Text    string
	Entries []entry
	Skills  []models.Skill
}

// entry is a record flattened for display
type entry struct {
	Title       string
	Subtitle    string
	Meta        string
	Dates       string
	Link        string
	Description string
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func newPage(doc models.Document, tmpl models.Template, opts Options) page {
	p := doc.PersonalInfo
	v := page{
		Root:      RootID,
		Offscreen: opts.Offscreen,
		Width:     PageWidth,
		Height:    PageHeight,
		Accent:    template.CSS(models.DefaultAccentColor),
		Base:      baseFontSize(doc.Settings.FontSize),
		Info:      p,
		Name:      orDefault(p.FullName, "Your Name"),
		JobTitle:  orDefault(p.JobTitle, "Your Title"),
		Initial:   "?",
		Skills:    doc.Skill,
	}
	if hexColor.MatchString(doc.Settings.AccentColor) {
		v.Accent = template.CSS(doc.Settings.AccentColor)
	}
	if strings.HasPrefix(p.Photo, "data:image/") {
		v.Photo = template.URL(p.Photo)
	}
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(p.FullName)); r != utf8.RuneError {
		v.Initial = strings.ToUpper(string(r))
	}
	for _, c := range []string{p.Email, p.Phone, p.Location, p.Website, p.LinkedIn, p.GitHub} {
		if c != "" {
			v.Contacts = append(v.Contacts, c)
		}
	}

	for _, e := range sections.RenderList(doc) {
		if b, ok := newBlock(doc, e); ok {
			b.Accent, b.Base = v.Accent, v.Base
			v.Blocks = append(v.Blocks, b)
		}
	}
	return v
}

// newBlock builds the block of a render-list entry. Empty sections are
// skipped.
func newBlock(doc models.Document, e sections.Entry) (block, bool) {
	b := block{ID: e.ID, Kind: e.ID, Title: e.Label}
	if e.Kind == sections.Custom {
		b.Kind = "custom"
		b.Title = e.Custom.Title
		for _, it := range e.Custom.Items {
			b.Entries = append(b.Entries, entry{
				Title:       it.Title,
				Subtitle:    it.Subtitle,
				Dates:       it.Date,
				Description: it.Description,
			})
		}
		return b, len(b.Entries) > 0
	}

	switch e.ID {
	case models.SectionSummary:
		b.Text = doc.Summary.Text
		return b, b.Text != ""
	case models.SectionSkill:
		b.Skills = doc.Skill
		return b, len(b.Skills) > 0
	case models.SectionExperience:
		for _, x := range doc.Experience {
			b.Entries = append(b.Entries, entry{
				Title:       x.Position,
				Subtitle:    x.Company,
				Meta:        x.Location,
				Dates:       DateRange(x.StartDate, x.EndDate, x.Current),
				Description: x.Description,
			})
		}
	case models.SectionEducation:
		for _, x := range doc.Education {
			sub := x.Degree
			if x.Field != "" {
				sub = strings.TrimPrefix(sub+" – "+x.Field, " – ")
			}
			meta := ""
			if x.GPA != "" {
				meta = "GPA: " + x.GPA
			}
			b.Entries = append(b.Entries, entry{
				Title:       x.Institution,
				Subtitle:    sub,
				Meta:        meta,
				Dates:       DateRange(x.StartDate, x.EndDate, x.Current),
				Description: x.Description,
			})
		}
	case models.SectionOrganization:
		for _, x := range doc.Organization {
			b.Entries = append(b.Entries, entry{
				Title:       x.Name,
				Subtitle:    x.Role,
				Dates:       DateRange(x.StartDate, x.EndDate, x.Current),
				Description: x.Description,
			})
		}
	case models.SectionProject:
		for _, x := range doc.Project {
			b.Entries = append(b.Entries, entry{
				Title:       x.Name,
				Subtitle:    x.Role,
				Meta:        x.Technologies,
				Dates:       DateRange(x.StartDate, x.EndDate, false),
				Link:        x.Link,
				Description: x.Description,
			})
		}
	case models.SectionCertificate:
		for _, x := range doc.Certificate {
			meta := ""
			if x.CredentialID != "" {
				meta = "ID: " + x.CredentialID
			}
			b.Entries = append(b.Entries, entry{
				Title:    x.Name,
				Subtitle: x.Issuer,
				Meta:     meta,
				Dates:    FormatDate(x.Date),
				Link:     x.Link,
			})
		}
	}
	return b, len(b.Entries) > 0
}

func baseFontSize(f models.FontSize) float64 {
	switch f {
	case models.FontSizeSmall:
		return 11
	case models.FontSizeLarge:
		return 13
	}
	return 12
}

// px scales a size given for the medium font to the page's base size
func px(base, n float64) string {
	return fmt.Sprintf("%.2fpx", n*base/12)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
