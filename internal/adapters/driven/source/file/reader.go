// Package file reads source documents from the local filesystem and
// computes their fingerprints.
package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.SourceReader = (*Reader)(nil)

// Reader is the filesystem SourceReader.
type Reader struct{}

// NewReader creates a new filesystem reader.
func NewReader() *Reader {
	return &Reader{}
}

// Fingerprint stats and hashes the file at path. The hash covers the
// full file bytes; size and mtime come from the same stat call so the
// three fields describe one observation of the file.
func (r *Reader) Fingerprint(ctx context.Context, path string) (domain.Fingerprint, error) {
	_, fp, err := r.Read(ctx, path)
	return fp, err
}

// Read returns the file bytes together with the fingerprint of exactly
// those bytes.
func (r *Reader) Read(_ context.Context, path string) ([]byte, domain.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.Fingerprint{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, domain.Fingerprint{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, domain.Fingerprint{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Fingerprint{}, fmt.Errorf("reading %s: %w", path, err)
	}

	sum := sha256.Sum256(content)
	fp := domain.Fingerprint{
		SizeBytes:   int64(len(content)),
		ModTime:     info.ModTime().UTC(),
		ContentHash: hex.EncodeToString(sum[:]),
	}
	return content, fp, nil
}
