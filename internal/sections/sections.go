// Package sections maintains the section order of a CV and computes the
// list of sections a template renders.
package sections

import "github.com/fadcv/fadcv/pkg/models"

// Reorder moves the entry at from to position to, shifting the entries in
// between. Out-of-range indices leave the order unchanged. The input is
// never modified.
func Reorder(order []models.SectionOrder, from, to int) []models.SectionOrder {
	out := make([]models.SectionOrder, len(order))
	copy(out, order)
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) || from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// Drop is the result of a drag gesture. A nil Destination means the
// gesture was cancelled.
type Drop struct {
	Source      int  `json:"sourceIndex"`
	Destination *int `json:"destinationIndex"`
}

// ApplyDrop reorders according to a drag gesture; cancelled gestures are a
// no-op.
func ApplyDrop(order []models.SectionOrder, drop Drop) []models.SectionOrder {
	if drop.Destination == nil {
		out := make([]models.SectionOrder, len(order))
		copy(out, order)
		return out
	}
	return Reorder(order, drop.Source, *drop.Destination)
}

// ToggleVisibility flips the visible flag of the entry with the given id.
// Unknown ids leave the order unchanged.
func ToggleVisibility(order []models.SectionOrder, id string) []models.SectionOrder {
	out := make([]models.SectionOrder, len(order))
	copy(out, order)
	for i := range out {
		if out[i].ID == id {
			out[i].Visible = !out[i].Visible
		}
	}
	return out
}

// Kind discriminates built-in from user-defined sections
type Kind int

const (
	Builtin Kind = iota
	Custom
)

// Entry is one section to render
type Entry struct {
	Kind  Kind
	ID    string
	Label string
	// Custom is set when Kind is Custom
	Custom *models.CustomSection
}

// RenderList returns the sections a template renders, in order: visible
// entries of the section order, then every custom section the order does
// not mention, in collection order. Order entries that name neither a
// built-in nor an existing custom section are skipped.
func RenderList(doc models.Document) []Entry {
	entries := make([]Entry, 0, len(doc.SectionOrder)+len(doc.CustomSections))
	referenced := make(map[string]bool, len(doc.SectionOrder))

	for _, s := range doc.SectionOrder {
		referenced[s.ID] = true
		if !s.Visible {
			continue
		}
		if models.IsBuiltinSection(s.ID) {
			entries = append(entries, Entry{Kind: Builtin, ID: s.ID, Label: s.Label})
			continue
		}
		if cs, ok := doc.CustomSection(s.ID); ok {
			entries = append(entries, customEntry(cs))
		}
	}

	for _, cs := range doc.CustomSections {
		if !referenced[cs.ID] {
			entries = append(entries, customEntry(cs))
		}
	}
	return entries
}

func customEntry(cs models.CustomSection) Entry {
	return Entry{Kind: Custom, ID: cs.ID, Label: cs.Title, Custom: &cs}
}
