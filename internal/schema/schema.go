// Package schema validates CV documents from outside the application
// (imports, API uploads) before they are merged into the workspace.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDocument is returned for input that is not a CV document
var ErrInvalidDocument = errors.New("schema: invalid document")

//go:embed cv.schema.json
var source []byte

var compiled = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(source))
})

// Validate checks raw JSON against the document schema. Missing keys are
// accepted; they take defaults when the document is loaded.
func Validate(data []byte) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("schema: compile: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}
