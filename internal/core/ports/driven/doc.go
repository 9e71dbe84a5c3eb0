// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - WorkspaceStore: transactional access to the workspace's relational
//     store (documents, revisions, sections, notes, reassignment queue,
//     provocations)
//   - SourceReader: file fingerprinting and byte reading
//   - Sectioner / SectionerRegistry: raw bytes to ordered (heading, content)
//     pairs
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or sectioner package
package driven
