package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fadcv/fadcv/internal/editor"
	"github.com/fadcv/fadcv/internal/photo"
	"github.com/fadcv/fadcv/pkg/models"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your personal details",
	Long:  "Show and update the personal information and summary at the top of your CV",
}

// profilePrompts are the fields asked by the interactive editor
var profilePrompts = []struct {
	key   string
	label string
	get   func(models.Document) string
}{
	{"fullName", "Full Name", func(d models.Document) string { return d.PersonalInfo.FullName }},
	{"jobTitle", "Job Title", func(d models.Document) string { return d.PersonalInfo.JobTitle }},
	{"email", "Email", func(d models.Document) string { return d.PersonalInfo.Email }},
	{"phone", "Phone", func(d models.Document) string { return d.PersonalInfo.Phone }},
	{"location", "Location", func(d models.Document) string { return d.PersonalInfo.Location }},
	{"website", "Website", func(d models.Document) string { return d.PersonalInfo.Website }},
	{"linkedin", "LinkedIn", func(d models.Document) string { return d.PersonalInfo.LinkedIn }},
	{"github", "GitHub", func(d models.Document) string { return d.PersonalInfo.GitHub }},
	{"summary", "Summary", func(d models.Document) string { return d.Summary.Text }},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit",
	Short: "Interactively edit your personal details",
	Run: func(cmd *cobra.Command, args []string) {
		a := getApp(cmd)
		doc := a.Workspace.Document()

		fmt.Println(titleStyle.Render("Edit Profile"))
		fmt.Println("Press Enter to keep current value, or type a new value")

		reader := bufio.NewReader(os.Stdin)
		fields := map[string]string{}
		for _, p := range profilePrompts {
			fmt.Printf("%s [%s]: ", labelStyle.Render(p.label), p.get(doc))
			value, _ := reader.ReadString('\n')
			value = strings.TrimSpace(value)
			if value != "" {
				fields[p.key] = value
			}
		}

		if len(fields) == 0 {
			fmt.Println("\nNothing changed.")
			return
		}
		if _, err := a.Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.SetProfile(d, fields)
		}); err != nil {
			fail("updating profile: %v", err)
		}
		fmt.Println("\n✓ Profile updated successfully!")
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Display your personal details",
	Run: func(cmd *cobra.Command, args []string) {
		doc := getApp(cmd).Workspace.Document()
		p := doc.PersonalInfo

		fmt.Println(titleStyle.Render("Your Profile"))
		for _, f := range []struct{ label, value string }{
			{"Name:", p.FullName},
			{"Title:", p.JobTitle},
			{"Email:", p.Email},
			{"Phone:", p.Phone},
			{"Location:", p.Location},
			{"Website:", p.Website},
			{"LinkedIn:", p.LinkedIn},
			{"GitHub:", p.GitHub},
		} {
			if f.value != "" {
				fmt.Printf("%s %s\n", labelStyle.Render(f.label), valueStyle.Render(f.value))
			}
		}
		if p.Photo != "" {
			fmt.Printf("%s %s\n", labelStyle.Render("Photo:"), valueStyle.Render(fmt.Sprintf("✓ set (%d KB)", len(p.Photo)/1024)))
		}
		if doc.Summary.Text != "" {
			fmt.Println(labelStyle.Render("\nSummary:"))
			fmt.Println(valueStyle.Render(doc.Summary.Text))
		}
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Update personal details",
	Long: `Update personal details. Keys: fullName, jobTitle, email, phone, location,
website, linkedin, github and summary. An empty value clears the field.`,
	Example: `  fadcv profile set fullName="Ada Lovelace" jobTitle=Analyst
  fadcv profile set email=ada@example.com location=London
  fadcv profile set summary="Mathematician and first programmer."`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := editor.ParseFields(args)
		if err != nil {
			fail("%v", err)
		}
		if _, ok := fields["photo"]; ok {
			fail("use 'fadcv profile photo <file>' to set the photo")
		}
		if _, err := getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			return editor.SetProfile(d, fields)
		}); err != nil {
			fail("updating profile: %v", err)
		}
		fmt.Println("✓ Profile updated successfully!")
	},
}

var photoProfileCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Set the profile photo from a JPEG, PNG or WebP file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remove, _ := cmd.Flags().GetBool("remove")
		if !remove && len(args) == 0 {
			fail("a photo file is required (or --remove)")
		}

		var url string
		if !remove {
			f, err := os.Open(args[0])
			if err != nil {
				fail("opening photo: %v", err)
			}
			defer f.Close()
			url, err = photo.DataURL(f)
			if err != nil {
				fail("%v", err)
			}
		}

		getApp(cmd).Workspace.Update(func(d models.Document) (models.Document, error) {
			d.PersonalInfo.Photo = url
			return d, nil
		})
		if remove {
			fmt.Println("✓ Photo removed")
			return
		}
		fmt.Printf("✓ Photo updated (%d KB)\n", len(url)/1024)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(setProfileCmd)
	profileCmd.AddCommand(photoProfileCmd)

	photoProfileCmd.Flags().Bool("remove", false, "Remove the current photo")
}
