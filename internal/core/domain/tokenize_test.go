package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_ASCII(t *testing.T) {
	assert.Equal(t, []string{"hello", "world", "42"}, Tokenize("hello, world: 42!"))
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  \t\n ... "))
}

func TestTokenize_NonLatinScripts(t *testing.T) {
	assert.Equal(t, []string{"привет", "мир"}, Tokenize("привет, мир"))
	assert.Equal(t, []string{"日本語"}, Tokenize("日本語。"))
}

func TestTokenize_CombiningMarks(t *testing.T) {
	// "é" as e + U+0301 must stay one token.
	decomposed := "café time"
	tokens := Tokenize(decomposed)
	assert.Equal(t, []string{"café", "time"}, tokens)
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 3, CountWords("one two three"))
	assert.Equal(t, 2, CountWords("привет, мир!"))
	assert.Equal(t, len(Tokenize("a-b c_d e.f")), CountWords("a-b c_d e.f"))
}
