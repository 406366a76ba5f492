package models

// Record is an element of a repeatable collection
type Record interface {
	RecordID() string
}

func (e Education) RecordID() string     { return e.ID }
func (e Experience) RecordID() string    { return e.ID }
func (o Organization) RecordID() string  { return o.ID }
func (p Project) RecordID() string       { return p.ID }
func (c Certificate) RecordID() string   { return c.ID }
func (s Skill) RecordID() string         { return s.ID }
func (c CustomItem) RecordID() string    { return c.ID }
func (c CustomSection) RecordID() string { return c.ID }

// IndexOf returns the position of the record with the given id, or -1
func IndexOf[T Record](items []T, id string) int {
	for i, item := range items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

// Append returns a new slice with item added at the end
func Append[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// Remove returns a new slice without the record with the given id.
// The boolean is false when no record matched.
func Remove[T Record](items []T, id string) ([]T, bool) {
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}

// Replace returns a new slice where the record sharing item's id is
// replaced by item.
func Replace[T Record](items []T, item T) ([]T, bool) {
	i := IndexOf(items, item.RecordID())
	if i < 0 {
		return items, false
	}
	out := make([]T, len(items))
	copy(out, items)
	out[i] = item
	return out, true
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// Clone returns a deep copy of d that shares no slices with it
func (d Document) Clone() Document {
	c := d
	c.Education = cloneSlice(d.Education)
	c.Experience = cloneSlice(d.Experience)
	c.Organization = cloneSlice(d.Organization)
	c.Project = cloneSlice(d.Project)
	c.Certificate = cloneSlice(d.Certificate)
	c.Skill = cloneSlice(d.Skill)
	c.SectionOrder = cloneSlice(d.SectionOrder)
	c.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, cs := range d.CustomSections {
		cs.Items = cloneSlice(cs.Items)
		c.CustomSections[i] = cs
	}
	return c
}

// CustomSection returns the custom section with the given id
func (d Document) CustomSection(id string) (CustomSection, bool) {
	i := IndexOf(d.CustomSections, id)
	if i < 0 {
		return CustomSection{}, false
	}
	return d.CustomSections[i], true
}
