package utils

import (
	"sort"
	"sync"
)

// FindTopDocumentsParallel runs a parallel search for rawQuery, restricted
// to StatusActual documents.
func (s *SearchServer) FindTopDocumentsParallel(rawQuery string) ([]Document, error) {
	return s.FindTopDocumentsParallelBy(rawQuery, statusPredicate(StatusActual))
}

// FindTopDocumentsParallelStatus runs a parallel search restricted to
// status.
func (s *SearchServer) FindTopDocumentsParallelStatus(rawQuery string, status Status) ([]Document, error) {
	return s.FindTopDocumentsParallelBy(rawQuery, statusPredicate(status))
}

// FindTopDocumentsParallelBy runs a parallel search with a caller-supplied
// predicate. It accumulates relevance through a sharded ConcurrentMap: all
// plus-word postings are scored across goroutines (phase one), joined, then
// every minus-word posting is erased from the accumulator across goroutines
// (phase two), joined again, and only then is the accumulator snapshotted.
// This two-phase join is load-bearing: letting an erasure race an insertion
// on the same key would make the result nondeterministic.
func (s *SearchServer) FindTopDocumentsParallelBy(rawQuery string, keep DocumentPredicate) ([]Document, error) {
	query, err := s.parseQuery(rawQuery, false)
	if err != nil {
		return nil, err
	}
	matched := s.findAllDocumentsParallel(query, keep)
	rankDocuments(matched)
	if len(matched) > MaxResultDocumentCount {
		matched = matched[:MaxResultDocumentCount]
	}
	return matched, nil
}

func (s *SearchServer) findAllDocumentsParallel(query Query, keep DocumentPredicate) []Document {
	shardCount := s.DocumentCount()
	if shardCount < 1 {
		shardCount = 1
	}
	accumulator := NewConcurrentMap[int, float64](shardCount)

	var wg sync.WaitGroup
	scored := make(map[string]bool, len(query.PlusWords))
	for _, word := range query.PlusWords {
		if scored[word] {
			continue // a repeated plus-word counts once, as in the sequential scorer
		}
		scored[word] = true
		postings, ok := s.wordToDocumentFreqs[word]
		if !ok {
			continue
		}
		idf := s.computeWordInverseDocumentFreq(word)
		wg.Add(1)
		go func(postings map[int]float64, idf float64) {
			defer wg.Done()
			for docID, tf := range postings {
				data := s.documents[docID]
				if keep(docID, data.status, data.rating) {
					acc := accumulator.Access(docID)
					*acc.Value() += tf * idf
					acc.Unlock()
				}
			}
		}(postings, idf)
	}
	wg.Wait() // phase one join: all plus-word accumulation has completed

	for _, word := range query.MinusWords {
		postings, ok := s.wordToDocumentFreqs[word]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(postings map[int]float64) {
			defer wg.Done()
			for docID := range postings {
				accumulator.Erase(docID)
			}
		}(postings)
	}
	wg.Wait() // phase two join: all minus-word erasure has completed

	snapshot := accumulator.Snapshot()
	matched := make([]Document, 0, len(snapshot))
	for docID, relevance := range snapshot {
		matched = append(matched, Document{ID: docID, Relevance: relevance, Rating: s.documents[docID].rating})
	}
	return matched
}

// RemoveDocumentParallel removes docID the same way RemoveDocument does, but
// fans the per-word inner-map removals across goroutines. Each goroutine
// touches a distinct word's inner map, so this is safe without locking — the
// outer word_to_document_freqs map itself is only mutated after the join,
// when pruning posting lists left empty.
func (s *SearchServer) RemoveDocumentParallel(docID int) {
	freqs, ok := s.idToWordFreqs[docID]
	if !ok {
		return
	}
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}

	var wg sync.WaitGroup
	for _, w := range words {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			delete(s.wordToDocumentFreqs[word], docID)
		}(w)
	}
	wg.Wait()

	for _, w := range words {
		if len(s.wordToDocumentFreqs[w]) == 0 {
			delete(s.wordToDocumentFreqs, w)
		}
	}
	delete(s.documents, docID)
	delete(s.idToWordFreqs, docID)
	s.removeDocumentID(docID)
}

// MatchDocumentParallel mirrors MatchDocument but scans minus-words and
// filters plus-words across goroutines. The query is parsed without
// deduplication, so the result is sorted and deduplicated after filtering
// instead of before, avoiding the unsafe "dereference before membership
// check" pattern the original's parallel matcher used (see DESIGN.md).
func (s *SearchServer) MatchDocumentParallel(rawQuery string, docID int) ([]string, Status, error) {
	data, ok := s.documents[docID]
	if !ok {
		return nil, 0, ErrOutOfRange
	}
	query, err := s.parseQuery(rawQuery, false)
	if err != nil {
		return nil, 0, err
	}

	if s.anyWordMatches(query.MinusWords, docID) {
		return []string{}, data.status, nil
	}

	matched := s.filterWordsMatching(query.PlusWords, docID)
	sort.Strings(matched)
	return dedupeSorted(matched), data.status, nil
}

func (s *SearchServer) wordContainsDoc(word string, docID int) bool {
	postings, ok := s.wordToDocumentFreqs[word]
	if !ok {
		return false
	}
	_, ok = postings[docID]
	return ok
}

func (s *SearchServer) anyWordMatches(words []string, docID int) bool {
	var (
		mu    sync.Mutex
		found bool
		wg    sync.WaitGroup
	)
	for _, w := range words {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			if s.wordContainsDoc(word, docID) {
				mu.Lock()
				found = true
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return found
}

func (s *SearchServer) filterWordsMatching(words []string, docID int) []string {
	matches := make([]bool, len(words))
	var wg sync.WaitGroup
	for i, w := range words {
		wg.Add(1)
		go func(i int, word string) {
			defer wg.Done()
			matches[i] = s.wordContainsDoc(word, docID)
		}(i, w)
	}
	wg.Wait()

	out := make([]string, 0, len(words))
	for i, w := range words {
		if matches[i] {
			out = append(out, w)
		}
	}
	return out
}

func dedupeSorted(words []string) []string {
	if len(words) == 0 {
		return words
	}
	out := words[:1]
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
