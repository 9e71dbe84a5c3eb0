package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	q querier
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, title, source_path, source_size, source_mtime_ns, source_hash,
	current_revision_id, created_at, updated_at`

// Insert stores a new document.
func (s *documentStore) Insert(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO documents (id, title, source_path, source_size, source_mtime_ns, source_hash,
			current_revision_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.SourcePath,
		doc.Fingerprint.SizeBytes, doc.Fingerprint.ModTime.UTC().UnixNano(), doc.Fingerprint.ContentHash,
		doc.CurrentRevisionID, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE id = ?
	`, id)
	return scanDocument(row)
}

// List returns all documents, oldest first.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// UpdateSourcePath updates source_path only (the locate operation).
func (s *documentStore) UpdateSourcePath(ctx context.Context, id, path string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE documents SET source_path = ?, updated_at = ? WHERE id = ?
	`, path, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating source path: %w", err)
	}
	return requireOneRow(res, "document")
}

// SetCurrentRevision points the document at a new revision and adopts
// its fingerprint.
func (s *documentStore) SetCurrentRevision(
	ctx context.Context,
	id, revisionID string,
	fp domain.Fingerprint,
) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE documents
		SET current_revision_id = ?, source_size = ?, source_mtime_ns = ?, source_hash = ?, updated_at = ?
		WHERE id = ?
	`, revisionID, fp.SizeBytes, fp.ModTime.UTC().UnixNano(), fp.ContentHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("setting current revision: %w", err)
	}
	return requireOneRow(res, "document")
}

// Delete removes a document; dependants cascade.
func (s *documentStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return requireOneRow(res, "document")
}

// requireOneRow maps zero affected rows to ErrNotFound.
func requireOneRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", entity, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

// scanDocumentFields scans document columns through any Scan func.
func scanDocumentFields(scan func(dest ...any) error) (*domain.Document, error) {
	var doc domain.Document
	var mtimeNS int64
	var currentRevisionID sql.NullString

	if err := scan(&doc.ID, &doc.Title, &doc.SourcePath,
		&doc.Fingerprint.SizeBytes, &mtimeNS, &doc.Fingerprint.ContentHash,
		&currentRevisionID, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Fingerprint.ModTime = time.Unix(0, mtimeNS).UTC()
	if currentRevisionID.Valid {
		doc.CurrentRevisionID = &currentRevisionID.String
	}
	return &doc, nil
}
