// Package markdown sections Markdown sources on ATX headings.
package markdown

import (
	"context"
	"strings"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Ensure Sectioner implements the interface.
var _ driven.Sectioner = (*Sectioner)(nil)

// Sectioner handles Markdown documents. Every ATX heading (any level)
// starts a new section; text before the first heading becomes a
// heading-less preamble section. Headings inside fenced code blocks
// are ignored.
type Sectioner struct{}

// New creates a new Markdown sectioner.
func New() *Sectioner {
	return &Sectioner{}
}

// Section extracts the ordered section sequence from content.
func (s *Sectioner) Section(_ context.Context, content []byte) ([]domain.SourceSection, error) {
	var sections []domain.SourceSection
	var current *domain.SourceSection
	var body strings.Builder
	inFence := false

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(body.String())
		sections = append(sections, *current)
		body.Reset()
	}

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)

		if isFenceDelimiter(trimmed) {
			inFence = !inFence
		}

		if heading, ok := atxHeading(trimmed); ok && !inFence {
			flush()
			current = &domain.SourceSection{Heading: heading}
			continue
		}

		if current == nil {
			if trimmed == "" {
				continue
			}
			// Preamble before the first heading.
			current = &domain.SourceSection{}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return sections, nil
}

// isFenceDelimiter reports whether the line opens or closes a fenced
// code block.
func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}

// atxHeading parses an ATX heading line, returning the heading text.
// Trailing closing hashes are stripped, as CommonMark does.
func atxHeading(line string) (string, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 6 {
		return "", false
	}
	rest := line[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		return "", false
	}
	text := strings.TrimSpace(rest)
	text = strings.TrimRight(text, "#")
	return strings.TrimSpace(text), true
}
