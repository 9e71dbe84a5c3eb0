package sectioners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
)

func TestForPathByExtension(t *testing.T) {
	registry := NewRegistry()

	for _, path := range []string{"essay.md", "essay.MD", "notes.markdown", "readme.mdown"} {
		s, err := registry.ForPath(path)
		require.NoError(t, err, path)
		assert.NotNil(t, s)
	}

	for _, path := range []string{"notes.txt", "LICENSE", "log.text"} {
		s, err := registry.ForPath(path)
		require.NoError(t, err, path)
		assert.NotNil(t, s)
	}
}

func TestForPathUnsupported(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ForPath("book.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
