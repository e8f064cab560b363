package plaintext

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// dateNameRe matches file names that start with an ISO date, the
// common naming scheme for daily journal entries.
var dateNameRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Normaliser handles plain text entries.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log"}
}

// Normalise converts a raw entry to normalised form.
// The text passes through unchanged apart from surrounding whitespace.
// Chunking is handled by the PostProcessor pipeline.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawEntry) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Title: titleFor(raw),
		Text:  strings.TrimSpace(raw.Text),
	}, nil
}

// titleFor prefers the source-provided title, falling back to the path.
func titleFor(raw *domain.RawEntry) string {
	if raw.Title != "" {
		return prettyName(raw.Title)
	}
	return titleFromPath(raw.Path)
}

// titleFromPath derives a display title from a file path.
func titleFromPath(path string) string {
	if path == "" {
		return ""
	}
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return prettyName(name)
}

// prettyName turns a file-style name into a display title.
// Date-like names such as 2025-08-11 are kept verbatim.
func prettyName(name string) string {
	if dateNameRe.MatchString(name) {
		return name
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
