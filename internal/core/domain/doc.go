// Package domain defines the core business entities for Lectern.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A reading item imported from a source file
//   - DocumentRevision: An immutable, numbered snapshot of sectioned content
//   - Section: An addressable unit of a revision, keyed by anchor
//   - Note: User-authored text anchored to a document and section
//   - ReassignmentEntry: A note awaiting a new section after reimport
//   - Provocation: An AI-generated artifact scoped to one (section, revision)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
