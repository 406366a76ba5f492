package models

import (
	"encoding/json"
	"fmt"
	"testing"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func TestDefaultDocument(t *testing.T) {
	d := Default()

	if len(d.SectionOrder) != 7 {
		t.Fatalf("expected 7 built-in sections, got %d", len(d.SectionOrder))
	}
	for _, s := range d.SectionOrder {
		if !s.Visible {
			t.Errorf("section %q should be visible by default", s.ID)
		}
		if !IsBuiltinSection(s.ID) {
			t.Errorf("unexpected section %q in default order", s.ID)
		}
	}
	if d.Settings != (Settings{Template: TemplateModern, AccentColor: "#dc2626", FontSize: FontSizeMedium}) {
		t.Errorf("unexpected default settings: %+v", d.Settings)
	}
	if d.Experience == nil || len(d.Experience) != 0 {
		t.Error("collections should be empty, non-nil")
	}

	// Default must hand out fresh slices every time
	d.SectionOrder[0].Visible = false
	if !Default().SectionOrder[0].Visible {
		t.Error("mutating one default leaked into the next")
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := Default()
	d.CustomSections = []CustomSection{{ID: "c1", Title: "Awards", Items: []CustomItem{{ID: "i1", Title: "Gold"}}}}
	d.Skill = []Skill{{ID: "s1", Name: "Go", Level: 4, Category: CategoryTechnical}}

	c := d.Clone()
	c.CustomSections[0].Items[0].Title = "Silver"
	c.Skill[0].Level = 1
	c.SectionOrder[0].Visible = false

	if d.CustomSections[0].Items[0].Title != "Gold" {
		t.Error("custom items shared between clone and source")
	}
	if d.Skill[0].Level != 4 {
		t.Error("skills shared between clone and source")
	}
	if !d.SectionOrder[0].Visible {
		t.Error("section order shared between clone and source")
	}
}

func TestCollectionHelpers(t *testing.T) {
	items := []Experience{{ID: "a", Company: "A"}, {ID: "b", Company: "B"}}

	added := Append(items, Experience{ID: "c"})
	if len(items) != 2 || len(added) != 3 {
		t.Fatalf("Append mutated input or lost items: %d/%d", len(items), len(added))
	}

	removed, ok := Remove(added, "b")
	if !ok || len(removed) != 2 || removed[1].ID != "c" {
		t.Errorf("Remove(b) = %+v, %v", removed, ok)
	}
	if _, ok := Remove(added, "zzz"); ok {
		t.Error("Remove of unknown id should report false")
	}

	replaced, ok := Replace(items, Experience{ID: "a", Company: "Acme"})
	if !ok || replaced[0].Company != "Acme" || items[0].Company != "A" {
		t.Errorf("Replace did not copy-on-write: %+v / %+v", replaced, items)
	}
}

func TestClampSkillLevel(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {3, 3}, {5, 5}, {6, 5}, {99, 5},
	}
	for _, tt := range tests {
		if got := ClampSkillLevel(tt.in); got != tt.want {
			t.Errorf("ClampSkillLevel(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSkillUnmarshalDefaults(t *testing.T) {
	var s Skill
	if err := json.Unmarshal([]byte(`{"id":"x","name":"Go"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Level != DefaultSkillLevel || s.Category != CategoryTechnical {
		t.Errorf("missing keys should take element defaults, got %+v", s)
	}

	if err := json.Unmarshal([]byte(`{"id":"y","name":"SQL","level":5,"category":"Tools"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Level != 5 || s.Category != CategoryTools {
		t.Errorf("explicit values lost: %+v", s)
	}
}

func TestNormalize(t *testing.T) {
	d := Document{
		Skill: []Skill{
			{ID: "s1", Name: "Go", Level: 9, Category: "Wizardry"},
			{ID: "s1", Name: "Rust", Level: 0, Category: CategoryTechnical},
			{Name: "SQL", Level: 3, Category: CategoryTools},
		},
		CustomSections: []CustomSection{{Title: "Awards", Items: []CustomItem{{Title: "a"}, {Title: "b"}}}},
		SectionOrder: []SectionOrder{
			{ID: SectionSkill, Label: "Skills", Visible: false},
			{ID: SectionSkill, Label: "Dup", Visible: true},
			{ID: SectionSummary, Visible: true},
		},
		Settings: Settings{Template: "glitter", FontSize: "xl"},
	}

	n := d.Normalize(counterIDs())

	if n.Skill[0].Level != 5 || n.Skill[0].Category != CategoryOther {
		t.Errorf("skill 0 not normalized: %+v", n.Skill[0])
	}
	if n.Skill[1].Level != 1 {
		t.Errorf("skill 1 level not clamped: %+v", n.Skill[1])
	}
	ids := map[string]bool{}
	for _, s := range n.Skill {
		if s.ID == "" || ids[s.ID] {
			t.Errorf("skill id %q missing or duplicated", s.ID)
		}
		ids[s.ID] = true
	}
	if n.CustomSections[0].ID == "" || n.CustomSections[0].Items[0].ID == n.CustomSections[0].Items[1].ID {
		t.Errorf("custom ids not assigned: %+v", n.CustomSections[0])
	}

	if len(n.SectionOrder) != 7 {
		t.Fatalf("expected 7 sections after repair, got %d: %+v", len(n.SectionOrder), n.SectionOrder)
	}
	if n.SectionOrder[0].ID != SectionSkill || n.SectionOrder[0].Visible {
		t.Errorf("existing entry should keep position and visibility: %+v", n.SectionOrder[0])
	}
	if n.SectionOrder[1].ID != SectionSummary || n.SectionOrder[1].Label != "Profile Summary" {
		t.Errorf("missing label should be filled: %+v", n.SectionOrder[1])
	}
	if n.Settings != DefaultSettings() {
		t.Errorf("invalid settings should fall back to defaults, got %+v", n.Settings)
	}
	if n.Experience == nil {
		t.Error("nil collections should become empty")
	}

	// the input is left untouched
	if d.Skill[0].Level != 9 || len(d.SectionOrder) != 3 {
		t.Error("Normalize mutated its receiver")
	}
}
