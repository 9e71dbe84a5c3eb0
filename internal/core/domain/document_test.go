package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Equal(t *testing.T) {
	now := time.Now()
	fp := Fingerprint{SizeBytes: 10, ModTime: now, ContentHash: "abc"}

	assert.True(t, fp.Equal(Fingerprint{SizeBytes: 10, ModTime: now, ContentHash: "abc"}))
	assert.False(t, fp.Equal(Fingerprint{SizeBytes: 11, ModTime: now, ContentHash: "abc"}))
	assert.False(t, fp.Equal(Fingerprint{SizeBytes: 10, ModTime: now.Add(time.Second), ContentHash: "abc"}))
	assert.False(t, fp.Equal(Fingerprint{SizeBytes: 10, ModTime: now, ContentHash: "def"}))
}

func TestFingerprint_SameContent(t *testing.T) {
	now := time.Now()
	fp := Fingerprint{SizeBytes: 10, ModTime: now, ContentHash: "abc"}

	// Hash is authoritative: mtime drift with identical hash is "unchanged".
	drifted := Fingerprint{SizeBytes: 10, ModTime: now.Add(time.Hour), ContentHash: "abc"}
	assert.True(t, fp.SameContent(drifted))

	assert.False(t, fp.SameContent(Fingerprint{ContentHash: "def"}))
	assert.False(t, Fingerprint{}.SameContent(Fingerprint{}))
}

func TestProvocationStyle_Valid(t *testing.T) {
	assert.True(t, StyleSocratic.Valid())
	assert.True(t, StyleCounter.Valid())
	assert.True(t, StyleSynthesis.Valid())
	assert.False(t, ProvocationStyle("freeform").Valid())
}
