// Package storage persists the CV document as a single JSON blob.
//
// Save and Clear never fail from the caller's point of view: errors are
// logged and the in-memory document stays authoritative. Load never fails
// either; anything it cannot read yields the default document.
package storage

import (
	"context"
	"encoding/json"

	"github.com/fadcv/fadcv/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Key is the fixed blob-store key holding the document
const Key = "fadcv_data"

// BlobStore is the key-value store the document is written to
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is the persistence adapter for the CV document
type Store struct {
	blobs BlobStore
	log   logrus.FieldLogger
}

// New returns a Store writing to blobs. A nil logger uses the logrus
// standard logger.
func New(blobs BlobStore, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{blobs: blobs, log: log.WithField("component", "storage")}
}

// Save serializes doc and overwrites the stored blob. It reports whether the
// write succeeded; failures are logged, never returned.
func (s *Store) Save(ctx context.Context, doc models.Document) bool {
	data, err := json.Marshal(doc)
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": "save", "key": Key}).WithError(err).Error("failed to serialize CV data")
		return false
	}
	if err := s.blobs.Set(ctx, Key, string(data)); err != nil {
		s.log.WithFields(logrus.Fields{"op": "save", "key": Key}).WithError(err).Error("failed to save CV data")
		return false
	}
	return true
}

// Load reads the stored document and merges it onto the default document.
// A missing or unreadable blob yields the default document.
func (s *Store) Load(ctx context.Context) models.Document {
	raw, ok, err := s.blobs.Get(ctx, Key)
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": "load", "key": Key}).WithError(err).Error("failed to load CV data")
		return models.Default()
	}
	if !ok || raw == "" {
		return models.Default()
	}

	doc, err := Decode([]byte(raw))
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": "load", "key": Key}).WithError(err).Warn("stored CV data is unreadable, starting empty")
		return models.Default()
	}
	return doc
}

// Clear removes the stored document. Failures are logged.
func (s *Store) Clear(ctx context.Context) {
	if err := s.blobs.Delete(ctx, Key); err != nil {
		s.log.WithFields(logrus.Fields{"op": "clear", "key": Key}).WithError(err).Error("failed to clear CV data")
	}
}

// Decode parses a serialized document and merges it onto the default:
// nested objects (personalInfo, summary, settings) are merged key by key,
// absent collections become empty and an absent sectionOrder takes the
// default order. The result is normalized.
func Decode(data []byte) (models.Document, error) {
	doc := models.Default()
	// decoded fresh so stored entries never merge into default entries
	doc.SectionOrder = nil

	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, err
	}
	return doc.Normalize(GenerateID), nil
}

// GenerateID returns a new record identifier. Identifiers are UUIDv7: a
// millisecond timestamp followed by random bits.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
