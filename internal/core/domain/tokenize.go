package domain

import "unicode"

// isWordRune reports whether r belongs to a word token. Combining
// marks count so that decomposed accented text tokenises the same as
// its precomposed form.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Tokenize splits text into word tokens, defined as maximal runs of
// Unicode letters, digits and combining marks. It is script-agnostic:
// non-Latin text tokenises by the same rules.
func Tokenize(text string) []string {
	var tokens []string
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// CountWords returns the number of word tokens in text without
// allocating the token slice.
func CountWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if isWordRune(r) {
			if !inWord {
				count++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return count
}
