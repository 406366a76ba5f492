package models

// Template identifies one of the visual templates
type Template string

const (
	TemplateModern   Template = "modern"
	TemplateMinimal  Template = "minimal"
	TemplateCreative Template = "creative"
)

// Templates lists the supported templates in display order
var Templates = []Template{TemplateModern, TemplateMinimal, TemplateCreative}

// Valid reports whether t is a known template
func (t Template) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// FontSize is the base typography scale
type FontSize string

const (
	FontSizeSmall  FontSize = "sm"
	FontSizeMedium FontSize = "md"
	FontSizeLarge  FontSize = "lg"
)

// Valid reports whether f is a known font size
func (f FontSize) Valid() bool {
	return f == FontSizeSmall || f == FontSizeMedium || f == FontSizeLarge
}

// Built-in section identifiers
const (
	SectionSummary      = "summary"
	SectionExperience   = "experience"
	SectionEducation    = "education"
	SectionSkill        = "skill"
	SectionOrganization = "organization"
	SectionProject      = "project"
	SectionCertificate  = "certificate"
)

// DefaultAccentColor is the accent used when none is set
const DefaultAccentColor = "#dc2626"

// AccentPresets are the accent colors offered by the settings panel
var AccentPresets = []string{
	"#dc2626", // crimson
	"#7c3aed", // purple
	"#2563eb", // blue
	"#059669", // emerald
	"#d97706", // amber
	"#db2777", // pink
	"#0891b2", // cyan
	"#1e293b", // dark
}

// Skill categories
const (
	CategoryTechnical  = "Technical"
	CategoryLanguage   = "Language"
	CategorySoftSkills = "Soft Skills"
	CategoryTools      = "Tools"
	CategoryDesign     = "Design"
	CategoryOther      = "Other"
)

// SkillCategories is the fixed set of skill categories
var SkillCategories = []string{
	CategoryTechnical, CategoryLanguage, CategorySoftSkills,
	CategoryTools, CategoryDesign, CategoryOther,
}

const (
	MinSkillLevel     = 1
	MaxSkillLevel     = 5
	DefaultSkillLevel = 3
)

// builtinSections is the default order of the built-in sections
var builtinSections = []SectionOrder{
	{ID: SectionSummary, Label: "Profile Summary", Visible: true},
	{ID: SectionExperience, Label: "Work Experience", Visible: true},
	{ID: SectionEducation, Label: "Education", Visible: true},
	{ID: SectionSkill, Label: "Skills", Visible: true},
	{ID: SectionOrganization, Label: "Organizations", Visible: true},
	{ID: SectionProject, Label: "Projects", Visible: true},
	{ID: SectionCertificate, Label: "Certificates", Visible: true},
}

// DefaultSectionOrder returns a fresh copy of the built-in section order
func DefaultSectionOrder() []SectionOrder {
	out := make([]SectionOrder, len(builtinSections))
	copy(out, builtinSections)
	return out
}

// IsBuiltinSection reports whether id names one of the seven built-in sections
func IsBuiltinSection(id string) bool {
	_, ok := BuiltinLabel(id)
	return ok
}

// BuiltinLabel returns the default label of a built-in section
func BuiltinLabel(id string) (string, bool) {
	for _, s := range builtinSections {
		if s.ID == id {
			return s.Label, true
		}
	}
	return "", false
}

// DefaultSettings returns the settings of a new document
func DefaultSettings() Settings {
	return Settings{
		Template:    TemplateModern,
		AccentColor: DefaultAccentColor,
		FontSize:    FontSizeMedium,
	}
}

// Default returns the empty document: all collections empty, the seven
// built-in sections visible, modern template.
func Default() Document {
	return Document{
		Education:      []Education{},
		Experience:     []Experience{},
		Organization:   []Organization{},
		Project:        []Project{},
		Certificate:    []Certificate{},
		Skill:          []Skill{},
		CustomSections: []CustomSection{},
		SectionOrder:   DefaultSectionOrder(),
		Settings:       DefaultSettings(),
	}
}
