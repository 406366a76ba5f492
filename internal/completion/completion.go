package completion

import (
	"math"

	"github.com/fadcv/fadcv/pkg/models"
)

// checks is the number of tracked fields and collections
const checks = 10

// Score calculates how complete a CV is.
// Returns an integer percentage between 0 and 100.
func Score(doc models.Document) int {
	score := 0
	p := doc.PersonalInfo

	for _, present := range [checks]bool{
		p.FullName != "",
		p.Email != "",
		p.Phone != "",
		p.JobTitle != "",
		p.Location != "",
		p.Photo != "",
		doc.Summary.Text != "",
		len(doc.Education) > 0,
		len(doc.Experience) > 0,
		len(doc.Skill) > 0,
	} {
		if present {
			score++
		}
	}

	return int(math.Round(float64(score) / checks * 100))
}

// Tier describes how a score is presented
type Tier struct {
	Label string
	Color string
}

// TierFor returns the label and color shown next to a score
func TierFor(score int) Tier {
	switch {
	case score < 30:
		return Tier{Label: "Just started", Color: "#ef4444"}
	case score < 60:
		return Tier{Label: "In progress", Color: "#f97316"}
	case score < 90:
		return Tier{Label: "Almost done", Color: "#eab308"}
	default:
		return Tier{Label: "Complete", Color: "#22c55e"}
	}
}
