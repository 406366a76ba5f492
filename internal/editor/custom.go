package editor

import (
	"fmt"
	"strings"

	"github.com/fadcv/fadcv/pkg/models"
)

// AddCustomSection creates an empty custom section and appends a visible
// entry for it to the section order.
func AddCustomSection(doc models.Document, id, title string) (models.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return doc, fmt.Errorf("%w: title is required", ErrInvalidField)
	}
	doc.CustomSections = models.Append(doc.CustomSections, models.CustomSection{
		ID:    id,
		Title: title,
		Items: []models.CustomItem{},
	})
	doc.SectionOrder = models.Append(doc.SectionOrder, models.SectionOrder{ID: id, Label: title, Visible: true})
	return doc, nil
}

// RenameCustomSection changes the title of a custom section and its order label
func RenameCustomSection(doc models.Document, id, title string) (models.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return doc, fmt.Errorf("%w: title is required", ErrInvalidField)
	}
	cs, ok := doc.CustomSection(id)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cs.Title = title
	doc.CustomSections, _ = models.Replace(doc.CustomSections, cs)
	for i := range doc.SectionOrder {
		if doc.SectionOrder[i].ID == id {
			doc.SectionOrder[i].Label = title
		}
	}
	return doc, nil
}

// RemoveCustomSection deletes a custom section and its order entry
func RemoveCustomSection(doc models.Document, id string) (models.Document, error) {
	var ok bool
	doc.CustomSections, ok = models.Remove(doc.CustomSections, id)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	order := make([]models.SectionOrder, 0, len(doc.SectionOrder))
	for _, s := range doc.SectionOrder {
		if s.ID != id {
			order = append(order, s)
		}
	}
	doc.SectionOrder = order
	return doc, nil
}

func editCustomItems(doc models.Document, sectionID string, fn func([]models.CustomItem) ([]models.CustomItem, error)) (models.Document, error) {
	cs, ok := doc.CustomSection(sectionID)
	if !ok {
		return doc, fmt.Errorf("%w: section %s", ErrNotFound, sectionID)
	}
	items, err := fn(cs.Items)
	if err != nil {
		return doc, err
	}
	cs.Items = items
	doc.CustomSections, _ = models.Replace(doc.CustomSections, cs)
	return doc, nil
}

// AddCustomItem appends an item to a custom section
func AddCustomItem(doc models.Document, sectionID, id string, fields map[string]string) (models.Document, error) {
	return editCustomItems(doc, sectionID, func(items []models.CustomItem) ([]models.CustomItem, error) {
		return addRecord(items, models.CustomItem{ID: id}, fields)
	})
}

// UpdateCustomItem changes fields of an item of a custom section
func UpdateCustomItem(doc models.Document, sectionID, id string, fields map[string]string) (models.Document, error) {
	return editCustomItems(doc, sectionID, func(items []models.CustomItem) ([]models.CustomItem, error) {
		return updateRecord(items, id, fields)
	})
}

// RemoveCustomItem deletes an item of a custom section
func RemoveCustomItem(doc models.Document, sectionID, id string) (models.Document, error) {
	return editCustomItems(doc, sectionID, func(items []models.CustomItem) ([]models.CustomItem, error) {
		return removeRecord(items, id)
	})
}
