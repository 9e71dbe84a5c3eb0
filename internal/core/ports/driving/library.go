package driving

import (
	"context"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

// LibraryService manages the workspace's reading items.
type LibraryService interface {
	// Import ingests the file at path as a new document and commits
	// its first revision. An empty title defaults to the file name.
	Import(ctx context.Context, path, title string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all documents, oldest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Locate updates a document's source path after the file moved,
	// without creating a new revision.
	Locate(ctx context.Context, documentID, newPath string) error

	// Sections returns the sections of the document's current
	// revision, in reading order.
	Sections(ctx context.Context, documentID string) ([]domain.Section, error)

	// Remove deletes a document and everything attached to it.
	Remove(ctx context.Context, documentID string) error
}
