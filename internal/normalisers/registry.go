package normalisers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/normalisers/markdown"
	"github.com/inkwell-labs/inkwell-cli/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry routes raw entries to normalisers by file extension.
type Registry struct {
	byExtension map[string]driven.Normaliser
	fallback    driven.Normaliser
}

// NewRegistry creates an empty registry with a plain text fallback.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]driven.Normaliser),
		fallback:    plaintext.New(),
	}
}

// NewDefaultRegistry creates a registry with all built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	return r
}

// Register adds a normaliser, claiming its supported extensions.
// Later registrations win on extension conflicts.
func (r *Registry) Register(normaliser driven.Normaliser) {
	for _, ext := range normaliser.SupportedExtensions() {
		r.byExtension[strings.ToLower(ext)] = normaliser
	}
}

// Normalise routes the raw entry to a normaliser based on its file
// extension. Unrecognised extensions fall back to plain text handling.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawEntry) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(raw.Path))
	normaliser, ok := r.byExtension[ext]
	if !ok {
		normaliser = r.fallback
	}

	return normaliser.Normalise(ctx, raw)
}

// SupportedExtensions returns all extensions that have registered
// normalisers, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
