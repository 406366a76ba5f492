package models

// PersonalInfo holds the identity block shown at the top of the CV
type PersonalInfo struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Photo    string `json:"photo"` // base64 data URL
}

// Summary is the free-text profile summary
type Summary struct {
	Text string `json:"text"`
}

// Education represents a school or university entry
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"` // YYYY-MM
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

// Experience represents work experience
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Organization represents a membership or volunteer role
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Project represents a portfolio project
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Link         string `json:"link"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
}

// Certificate represents a certification or license
type Certificate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	Expiry       string `json:"expiry"`
	CredentialID string `json:"credentialId"`
	Link         string `json:"link"`
}

// Skill represents a user skill
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"` // 1-5
	Category string `json:"category"`
}

// CustomItem is a generic entry of a user-defined section
type CustomItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Date        string `json:"date"` // free text
	Description string `json:"description"`
}

// CustomSection is a user-defined section with its own title
type CustomSection struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Items []CustomItem `json:"items"`
}

// SectionOrder is one entry of the rendering order
type SectionOrder struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// Settings controls the visual template
type Settings struct {
	Template    Template `json:"template"`
	AccentColor string   `json:"accentColor"`
	FontSize    FontSize `json:"fontSize"`
}

// Document is the canonical CV. There is a single instance per session and
// it is always exchanged by value; use Clone before mutating.
type Document struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        Summary         `json:"summary"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Organization   []Organization  `json:"organization"`
	Project        []Project       `json:"project"`
	Certificate    []Certificate   `json:"certificate"`
	Skill          []Skill         `json:"skill"`
	CustomSections []CustomSection `json:"customSections"`
	SectionOrder   []SectionOrder  `json:"sectionOrder"`
	Settings       Settings        `json:"settings"`
}
