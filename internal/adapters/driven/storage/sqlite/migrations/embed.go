// Package migrations embeds SQL migration files for the SQLite store.
// Each version ships a forward (.up.sql) and reverse (.down.sql) file;
// the pair is the compatibility contract across upgrades.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
