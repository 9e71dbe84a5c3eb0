package sectioners

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/sectioners/markdown"
	"github.com/lectern-labs/lectern-cli/internal/sectioners/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.SectionerRegistry = (*Registry)(nil)

// Registry selects a sectioner by file extension.
type Registry struct {
	byExtension map[string]driven.Sectioner
	fallback    driven.Sectioner
}

// NewRegistry creates a registry with the built-in sectioners:
// Markdown for .md and friends, plain text for .txt and for files
// without an extension.
func NewRegistry() *Registry {
	md := markdown.New()
	txt := plaintext.New()

	return &Registry{
		byExtension: map[string]driven.Sectioner{
			".md":       md,
			".markdown": md,
			".mdown":    md,
			".txt":      txt,
			".text":     txt,
			"":          txt,
		},
		fallback: nil,
	}
}

// ForPath returns the sectioner responsible for the file at path.
// Unknown extensions are rejected rather than guessed at.
func (r *Registry) ForPath(path string) (driven.Sectioner, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if s, ok := r.byExtension[ext]; ok {
		return s, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: no sectioner for %q files", domain.ErrUnsupportedType, ext)
}
