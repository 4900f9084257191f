package utils

import (
	"sort"
	"strings"
)

// Logger receives the duplicate detector's informational output. *log.Logger
// satisfies this through its Printf method, but the core never depends on
// where the message goes.
type Logger interface {
	Printf(format string, args ...any)
}

// RemoveDuplicates walks server's live ids in ascending order and removes
// every document whose forward-index vocabulary (word set, values ignored)
// duplicates one already seen — keeping the first, lowest-id, occurrence of
// each distinct vocabulary. logger may be nil.
func RemoveDuplicates(server *SearchServer, logger Logger) {
	seen := make(map[string]struct{})
	var toRemove []int

	for _, docID := range server.IterateIDs() {
		key := vocabularyKey(server.GetWordFrequencies(docID))
		if _, dup := seen[key]; dup {
			toRemove = append(toRemove, docID)
			if logger != nil {
				logger.Printf("Found duplicate document id %d", docID)
			}
			continue
		}
		seen[key] = struct{}{}
	}

	for _, docID := range toRemove {
		server.RemoveDocument(docID)
	}
}

// vocabularyKey builds a stable, order-independent fingerprint of a
// document's distinct words.
func vocabularyKey(freqs map[string]float64) string {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	sort.Strings(words)
	return strings.Join(words, "\x00")
}
