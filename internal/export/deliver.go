package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadcv/fadcv/pkg/models"
)

// FallbackTitle names the file when the CV has no full name
const FallbackTitle = "CV-FadCV"

// Title returns the document title used for the file name
func Title(doc models.Document) string {
	name := strings.TrimSpace(doc.PersonalInfo.FullName)
	if name == "" {
		return FallbackTitle
	}
	return "CV - " + name
}

var unsafeName = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// DirDeliverer writes exports into a directory
type DirDeliverer struct {
	Dir string
}

// Deliver writes pdf to Dir/name and returns the path
func (d DirDeliverer) Deliver(_ context.Context, name string, pdf []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, unsafeName.Replace(name))
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
