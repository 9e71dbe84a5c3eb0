package driven

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// SourceReader reads source files and computes their fingerprints.
type SourceReader interface {
	// Fingerprint stats and hashes the file at path. Returns
	// domain.ErrNotFound when the path does not exist.
	Fingerprint(ctx context.Context, path string) (domain.Fingerprint, error)

	// Read returns the file bytes together with the fingerprint of
	// exactly those bytes.
	Read(ctx context.Context, path string) ([]byte, domain.Fingerprint, error)
}
