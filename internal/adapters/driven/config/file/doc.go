// Package file provides the file-based configuration adapter.
// It persists application settings to a TOML file in the user's
// lectern directory.
package file
