package utils

import (
	"fmt"
	"sort"
)

// QueryWord is one parsed query token: its word (minus prefix stripped), and
// whether it was negated or recognized as a stop word.
type QueryWord struct {
	Data    string
	IsMinus bool
	IsStop  bool
}

// Query is a parsed search query: its positive and negated word lists. For
// sequential scoring and matching both lists are sorted and deduplicated;
// the parallel paths leave them as parsed (see parseQuery).
type Query struct {
	PlusWords  []string
	MinusWords []string
}

// parseQueryWord classifies one raw query token.
func (s *SearchServer) parseQueryWord(text string) (QueryWord, error) {
	if text == "" {
		return QueryWord{}, fmt.Errorf("%w: query word is empty", ErrInvalidQuery)
	}
	word := text
	isMinus := false
	if word[0] == '-' {
		isMinus = true
		word = word[1:]
	}
	if word == "" || word[0] == '-' || !IsValidWord(word) {
		return QueryWord{}, fmt.Errorf("%w: query word %q is invalid", ErrInvalidQuery, text)
	}
	return QueryWord{Data: word, IsMinus: isMinus, IsStop: s.isStopWord(word)}, nil
}

// parseQuery tokenizes text and classifies each token into plus/minus words,
// dropping stop words. When normalize is true, both lists are sorted and
// deduplicated in place; the parallel scorer and matcher pass false (the
// scorer skips repeated plus-words itself and the matcher deduplicates its
// result after filtering).
func (s *SearchServer) parseQuery(text string, normalize bool) (Query, error) {
	var q Query
	for _, word := range SplitIntoWords(text) {
		qw, err := s.parseQueryWord(word)
		if err != nil {
			return Query{}, err
		}
		if qw.IsStop {
			continue
		}
		if qw.IsMinus {
			q.MinusWords = append(q.MinusWords, qw.Data)
		} else {
			q.PlusWords = append(q.PlusWords, qw.Data)
		}
	}
	if normalize {
		q.PlusWords = sortUnique(q.PlusWords)
		q.MinusWords = sortUnique(q.MinusWords)
	}
	return q, nil
}

// sortUnique returns words sorted with adjacent duplicates removed.
func sortUnique(words []string) []string {
	if len(words) == 0 {
		return words
	}
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, w := range sorted[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
