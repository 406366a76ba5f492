package models

import "encoding/json"

// ClampSkillLevel forces level into [MinSkillLevel, MaxSkillLevel]
func ClampSkillLevel(level int) int {
	if level < MinSkillLevel {
		return MinSkillLevel
	}
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

// IsSkillCategory reports whether c is one of SkillCategories
func IsSkillCategory(c string) bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// NewSkill returns a skill with the defaults used by the editor
func NewSkill(id string) Skill {
	return Skill{ID: id, Level: DefaultSkillLevel, Category: CategoryTechnical}
}

// UnmarshalJSON applies per-element defaults for keys missing from data so
// that skills written by an older schema decode with a usable level and
// category.
func (s *Skill) UnmarshalJSON(data []byte) error {
	type plain Skill
	v := plain(NewSkill(""))
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Skill(v)
	return nil
}

// Normalize returns a copy of d that satisfies the document invariants:
// collections are non-nil, record ids are present and unique per collection,
// skill levels are clamped, settings hold known values and every built-in
// section appears exactly once in SectionOrder. newID is used for records
// whose id is missing or duplicated.
func (d Document) Normalize(newID func() string) Document {
	n := d.Clone()

	n.Education = ensureIDs(n.Education, newID, func(e *Education) *string { return &e.ID })
	n.Experience = ensureIDs(n.Experience, newID, func(e *Experience) *string { return &e.ID })
	n.Organization = ensureIDs(n.Organization, newID, func(o *Organization) *string { return &o.ID })
	n.Project = ensureIDs(n.Project, newID, func(p *Project) *string { return &p.ID })
	n.Certificate = ensureIDs(n.Certificate, newID, func(c *Certificate) *string { return &c.ID })
	n.Skill = ensureIDs(n.Skill, newID, func(s *Skill) *string { return &s.ID })
	n.CustomSections = ensureIDs(n.CustomSections, newID, func(c *CustomSection) *string { return &c.ID })

	for i := range n.Skill {
		n.Skill[i].Level = ClampSkillLevel(n.Skill[i].Level)
		if !IsSkillCategory(n.Skill[i].Category) {
			n.Skill[i].Category = CategoryOther
		}
	}
	for i := range n.CustomSections {
		n.CustomSections[i].Items = ensureIDs(n.CustomSections[i].Items, newID,
			func(c *CustomItem) *string { return &c.ID })
	}

	n.SectionOrder = repairSectionOrder(d.SectionOrder)
	n.Settings = repairSettings(n.Settings)
	return n
}

func ensureIDs[T any](items []T, newID func() string, id func(*T) *string) []T {
	seen := make(map[string]bool, len(items))
	for i := range items {
		p := id(&items[i])
		if *p == "" || seen[*p] {
			*p = newID()
		}
		seen[*p] = true
	}
	return items
}

func repairSectionOrder(order []SectionOrder) []SectionOrder {
	if order == nil {
		return DefaultSectionOrder()
	}
	out := make([]SectionOrder, 0, len(order)+len(builtinSections))
	seen := make(map[string]bool, len(order))
	for _, s := range order {
		if s.ID == "" || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		if s.Label == "" {
			if label, ok := BuiltinLabel(s.ID); ok {
				s.Label = label
			}
		}
		out = append(out, s)
	}
	for _, b := range builtinSections {
		if !seen[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func repairSettings(s Settings) Settings {
	d := DefaultSettings()
	if !s.Template.Valid() {
		s.Template = d.Template
	}
	if !s.FontSize.Valid() {
		s.FontSize = d.FontSize
	}
	if s.AccentColor == "" {
		s.AccentColor = d.AccentColor
	}
	return s
}
