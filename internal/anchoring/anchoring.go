// Package anchoring turns section headings into stable, human-readable,
// collision-free anchor keys. Keys have the form "slug#N" where N is a
// 1-based occurrence ordinal per slug. The algorithm is deterministic:
// re-sectioning an unchanged document yields byte-identical keys, which
// is what lets the reconciler remap notes across revisions by anchor
// equality alone.
package anchoring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLen caps slugs before the ordinal suffix is appended.
const maxSlugLen = 80

// fallbackSlug substitutes for headings that normalise to nothing.
const fallbackSlug = "section"

// stripMarks decomposes accented characters and removes the combining
// marks, so "Résumé" slugs the same as "Resume".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalises a heading into its slug: diacritics stripped,
// lowercased, non-alphanumeric runs collapsed to single hyphens,
// leading/trailing hyphens trimmed, capped at 80 characters.
func Slugify(heading string) string {
	text, _, err := transform.String(stripMarks, heading)
	if err != nil {
		// Undecomposable input keeps its original form; the rune
		// filter below still applies.
		text = heading
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingSep := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	slug := b.String()
	if runeCount := utf8.RuneCountInString(slug); runeCount > maxSlugLen {
		cut := make([]rune, 0, maxSlugLen)
		for _, r := range slug {
			if len(cut) == maxSlugLen {
				break
			}
			cut = append(cut, r)
		}
		slug = strings.TrimRight(string(cut), "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// Builder assigns anchor keys with a running per-slug occurrence
// counter. The counter is not reset between calls: feeding one
// revision's headings through a single Builder guarantees every key is
// unique within that revision, with repeated headings numbered in
// input order.
type Builder struct {
	seen map[string]int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]int)}
}

// Key returns the anchor key for the next occurrence of heading.
func (b *Builder) Key(heading string) string {
	slug := Slugify(heading)
	b.seen[slug]++
	return fmt.Sprintf("%s#%d", slug, b.seen[slug])
}

// BuildAnchors returns one anchor key per heading, in input order,
// using a fresh Builder for the whole sequence.
func BuildAnchors(headings []string) []string {
	b := NewBuilder()
	keys := make([]string, len(headings))
	for i, h := range headings {
		keys[i] = b.Key(h)
	}
	return keys
}
