package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionSplitsOnHeadings(t *testing.T) {
	input := `# First
Alpha paragraph.

## Second
Beta paragraph.

# Third
Gamma paragraph.
`
	sections, err := New().Section(context.Background(), []byte(input))
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "First", sections[0].Heading)
	assert.Equal(t, "Alpha paragraph.", sections[0].Content)
	assert.Equal(t, "Second", sections[1].Heading)
	assert.Equal(t, "Third", sections[2].Heading)
	assert.Equal(t, "Gamma paragraph.", sections[2].Content)
}

func TestSectionPreambleHasNoHeading(t *testing.T) {
	input := `Some opening text before any heading.

# Chapter One
Body.
`
	sections, err := New().Section(context.Background(), []byte(input))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Empty(t, sections[0].Heading)
	assert.Equal(t, "Some opening text before any heading.", sections[0].Content)
	assert.Equal(t, "Chapter One", sections[1].Heading)
}

func TestSectionIgnoresHeadingsInFencedCode(t *testing.T) {
	input := "# Real\n```\n# not a heading\n```\nafter the fence\n"

	sections, err := New().Section(context.Background(), []byte(input))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Real", sections[0].Heading)
	assert.Contains(t, sections[0].Content, "# not a heading")
	assert.Contains(t, sections[0].Content, "after the fence")
}

func TestSectionStripsClosingHashes(t *testing.T) {
	sections, err := New().Section(context.Background(), []byte("## Closed ##\ntext\n"))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Closed", sections[0].Heading)
}

func TestSectionRejectsHashWithoutSpace(t *testing.T) {
	sections, err := New().Section(context.Background(), []byte("#hashtag is not a heading\n"))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Empty(t, sections[0].Heading)
	assert.Equal(t, "#hashtag is not a heading", sections[0].Content)
}

func TestSectionEmptyInput(t *testing.T) {
	sections, err := New().Section(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, sections)
}
