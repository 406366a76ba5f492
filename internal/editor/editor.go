// Package editor implements the form-level edits of a CV document. Every
// function takes a document by value and returns the edited copy.
//
// Field values arrive as strings (from the command line or a form) and are
// decoded onto records by their JSON names, so "startDate=2021-03" or
// "current=true" address the same keys the stored document uses.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fadcv/fadcv/pkg/models"
	"github.com/go-viper/mapstructure/v2"
)

var (
	ErrUnknownCollection = errors.New("editor: unknown collection")
	ErrNotFound          = errors.New("editor: record not found")
	ErrInvalidField      = errors.New("editor: invalid field")
)

// Collections lists the repeatable built-in collections
var Collections = []string{
	models.SectionEducation,
	models.SectionExperience,
	models.SectionOrganization,
	models.SectionProject,
	models.SectionCertificate,
	models.SectionSkill,
}

// ParseFields turns "key=value" arguments into a field map
func ParseFields(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", ErrInvalidField, arg)
		}
		fields[key] = value
	}
	return fields, nil
}

// decode writes fields onto out, matching keys against JSON tags.
// The id key is reserved and rejected in any letter case, since field
// matching ignores case.
func decode(fields map[string]string, out any) error {
	for k := range fields {
		if strings.EqualFold(k, "id") {
			return fmt.Errorf("%w: id cannot be set", ErrInvalidField)
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return nil
}

func addRecord[T models.Record](items []T, item T, fields map[string]string) ([]T, error) {
	if err := decode(fields, &item); err != nil {
		return items, err
	}
	return models.Append(items, item), nil
}

func updateRecord[T models.Record](items []T, id string, fields map[string]string) ([]T, error) {
	i := models.IndexOf(items, id)
	if i < 0 {
		return items, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	item := items[i]
	if err := decode(fields, &item); err != nil {
		return items, err
	}
	out, ok := models.Replace(items, item)
	if !ok {
		return items, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return out, nil
}

func removeRecord[T models.Record](items []T, id string) ([]T, error) {
	out, ok := models.Remove(items, id)
	if !ok {
		return items, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return out, nil
}

// Add appends a new record with a fresh id to collection
func Add(doc models.Document, collection, id string, fields map[string]string) (models.Document, error) {
	var err error
	switch collection {
	case models.SectionEducation:
		doc.Education, err = addRecord(doc.Education, models.Education{ID: id}, fields)
	case models.SectionExperience:
		doc.Experience, err = addRecord(doc.Experience, models.Experience{ID: id}, fields)
	case models.SectionOrganization:
		doc.Organization, err = addRecord(doc.Organization, models.Organization{ID: id}, fields)
	case models.SectionProject:
		doc.Project, err = addRecord(doc.Project, models.Project{ID: id}, fields)
	case models.SectionCertificate:
		doc.Certificate, err = addRecord(doc.Certificate, models.Certificate{ID: id}, fields)
	case models.SectionSkill:
		doc.Skill, err = addRecord(doc.Skill, models.NewSkill(id), fields)
	default:
		return doc, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return doc, err
}

// Update changes fields of an existing record
func Update(doc models.Document, collection, id string, fields map[string]string) (models.Document, error) {
	var err error
	switch collection {
	case models.SectionEducation:
		doc.Education, err = updateRecord(doc.Education, id, fields)
	case models.SectionExperience:
		doc.Experience, err = updateRecord(doc.Experience, id, fields)
	case models.SectionOrganization:
		doc.Organization, err = updateRecord(doc.Organization, id, fields)
	case models.SectionProject:
		doc.Project, err = updateRecord(doc.Project, id, fields)
	case models.SectionCertificate:
		doc.Certificate, err = updateRecord(doc.Certificate, id, fields)
	case models.SectionSkill:
		doc.Skill, err = updateRecord(doc.Skill, id, fields)
	default:
		return doc, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return doc, err
}

// Remove deletes a record
func Remove(doc models.Document, collection, id string) (models.Document, error) {
	var err error
	switch collection {
	case models.SectionEducation:
		doc.Education, err = removeRecord(doc.Education, id)
	case models.SectionExperience:
		doc.Experience, err = removeRecord(doc.Experience, id)
	case models.SectionOrganization:
		doc.Organization, err = removeRecord(doc.Organization, id)
	case models.SectionProject:
		doc.Project, err = removeRecord(doc.Project, id)
	case models.SectionCertificate:
		doc.Certificate, err = removeRecord(doc.Certificate, id)
	case models.SectionSkill:
		doc.Skill, err = removeRecord(doc.Skill, id)
	default:
		return doc, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return doc, err
}

// Records returns the records of collection for display
func Records(doc models.Document, collection string) ([]any, error) {
	switch collection {
	case models.SectionEducation:
		return toAny(doc.Education), nil
	case models.SectionExperience:
		return toAny(doc.Experience), nil
	case models.SectionOrganization:
		return toAny(doc.Organization), nil
	case models.SectionProject:
		return toAny(doc.Project), nil
	case models.SectionCertificate:
		return toAny(doc.Certificate), nil
	case models.SectionSkill:
		return toAny(doc.Skill), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// SetProfile updates personal info. The "summary" key sets the summary text.
func SetProfile(doc models.Document, fields map[string]string) (models.Document, error) {
	rest := make(map[string]string, len(fields))
	for k, v := range fields {
		if k == "summary" {
			doc.Summary.Text = v
			continue
		}
		rest[k] = v
	}
	if err := decode(rest, &doc.PersonalInfo); err != nil {
		return doc, err
	}
	return doc, nil
}

// SetSettings validates and applies template settings. Empty values keep
// the current setting.
func SetSettings(doc models.Document, template models.Template, accent string, size models.FontSize) (models.Document, error) {
	if template != "" {
		if !template.Valid() {
			return doc, fmt.Errorf("%w: template %q", ErrInvalidField, template)
		}
		doc.Settings.Template = template
	}
	if size != "" {
		if !size.Valid() {
			return doc, fmt.Errorf("%w: font size %q", ErrInvalidField, size)
		}
		doc.Settings.FontSize = size
	}
	if accent != "" {
		if !isHexColor(accent) {
			return doc, fmt.Errorf("%w: accent color %q", ErrInvalidField, accent)
		}
		doc.Settings.AccentColor = strings.ToLower(accent)
	}
	return doc, nil
}

func isHexColor(s string) bool {
	if len(s) != 7 && len(s) != 4 || s[0] != '#' {
		return false
	}
	for _, c := range strings.ToLower(s[1:]) {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
