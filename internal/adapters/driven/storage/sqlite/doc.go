// Package sqlite is the SQLite-backed workspace store adapter. It
// implements the driven.WorkspaceStore port over a single database
// file per workspace, with embedded schema migrations and a shared
// querier so every sub-store works both auto-commit and inside a
// transaction.
package sqlite
