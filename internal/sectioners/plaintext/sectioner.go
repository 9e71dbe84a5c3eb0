// Package plaintext sections plain-text sources.
package plaintext

import (
	"context"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Ensure Sectioner implements the interface.
var _ driven.Sectioner = (*Sectioner)(nil)

// Sectioner handles plain-text documents. Plain text carries no
// structural markup, so the whole file becomes a single heading-less
// section; the anchor builder's fallback slug gives it a stable key.
type Sectioner struct{}

// New creates a new plain-text sectioner.
func New() *Sectioner {
	return &Sectioner{}
}

// Section extracts the ordered section sequence from content.
func (s *Sectioner) Section(_ context.Context, content []byte) ([]domain.SourceSection, error) {
	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, nil
	}
	return []domain.SourceSection{{Content: text}}, nil
}
