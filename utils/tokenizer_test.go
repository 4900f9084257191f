package utils

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSplitIntoWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"all spaces", "    ", nil},
		{"single word", "cat", []string{"cat"}},
		{"leading and trailing spaces", "  cat dog  ", []string{"cat", "dog"}},
		{"repeated internal spaces", "cat   dog", []string{"cat", "dog"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitIntoWords(tt.input))
		})
	}
}

func TestSplitIntoWordsSlicesWithoutCopying(t *testing.T) {
	text := "cat dog"
	words := SplitIntoWords(text)
	// A Go substring shares the original string's backing bytes; check both
	// the content of each word and that its data pointer lies inside text
	// at the expected offset rather than in a fresh copy.
	assert.Equal(t, text[0:3], words[0])
	assert.Equal(t, text[4:7], words[1])
	assert.True(t, unsafe.StringData(text) == unsafe.StringData(words[0]))
	assert.True(t, unsafe.StringData(text[4:]) == unsafe.StringData(words[1]))
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("cat"))
	assert.True(t, IsValidWord("cat-dog"))
	assert.False(t, IsValidWord("cat\x01dog"))
	assert.False(t, IsValidWord("\tcat"))
	assert.True(t, IsValidWord(""))
}
