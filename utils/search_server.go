package utils

import (
	"fmt"
	"math"
	"sort"
)

// MaxResultDocumentCount caps the number of documents FindTopDocuments
// returns.
const MaxResultDocumentCount = 5

// Epsilon is the relevance band within which rating breaks ties.
const Epsilon = 1e-6

// SearchServer is an in-memory inverted/forward index over documents added
// with AddDocument. It is not internally synchronized: concurrent Add/Remove
// against the same server is undefined and must be serialized by the
// caller; concurrent read-only operations (FindTopDocuments, MatchDocument,
// GetWordFrequencies) are safe as long as no mutation is in flight.
type SearchServer struct {
	stopWords           map[string]struct{}
	wordToDocumentFreqs map[string]map[int]float64
	idToWordFreqs       map[int]map[string]float64
	documents           map[int]documentData
	documentIDs         []int // kept sorted ascending
}

// NewSearchServer builds an engine from a stop-word source: a []string, a
// single space-separated string, or nil for no stop words.
func NewSearchServer(stopWords any) (*SearchServer, error) {
	s := &SearchServer{
		stopWords:           make(map[string]struct{}),
		wordToDocumentFreqs: make(map[string]map[int]float64),
		idToWordFreqs:       make(map[int]map[string]float64),
		documents:           make(map[int]documentData),
	}

	var words []string
	switch v := stopWords.(type) {
	case nil:
	case string:
		words = SplitIntoWords(v)
	case []string:
		words = v
	case fmt.Stringer:
		words = SplitIntoWords(v.String())
	default:
		return nil, fmt.Errorf("%w: unsupported stop word source %T", ErrInvalidWord, stopWords)
	}

	for _, w := range words {
		if w == "" {
			continue
		}
		if !IsValidWord(w) {
			return nil, fmt.Errorf("%w: stop word %q is invalid", ErrInvalidWord, w)
		}
		s.stopWords[w] = struct{}{}
	}
	return s, nil
}

func (s *SearchServer) isStopWord(word string) bool {
	_, ok := s.stopWords[word]
	return ok
}

func (s *SearchServer) splitIntoWordsNoStop(text string) ([]string, error) {
	tokens := SplitIntoWords(text)
	words := make([]string, 0, len(tokens))
	for _, w := range tokens {
		if !IsValidWord(w) {
			return nil, fmt.Errorf("%w: word %q is invalid", ErrInvalidWord, w)
		}
		if !s.isStopWord(w) {
			words = append(words, w)
		}
	}
	return words, nil
}

// AddDocument tokenizes text and indexes it under docID with the given
// status and ratings (rating becomes the truncated integer mean). The
// operation is atomic: an invalid word or a rejected id leaves the engine
// unchanged.
func (s *SearchServer) AddDocument(docID int, text string, status Status, ratings []int) error {
	if docID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDocID, docID)
	}
	if _, exists := s.documents[docID]; exists {
		return fmt.Errorf("%w: %d already present", ErrInvalidDocID, docID)
	}

	words, err := s.splitIntoWordsNoStop(text)
	if err != nil {
		return err
	}

	s.documents[docID] = documentData{rating: computeAverageRating(ratings), status: status}
	s.insertDocumentID(docID)

	if len(words) == 0 {
		s.idToWordFreqs[docID] = map[string]float64{}
		return nil
	}

	invWordCount := 1.0 / float64(len(words))
	freqs := make(map[string]float64, len(words))
	for _, w := range words {
		freqs[w] += invWordCount
	}
	s.idToWordFreqs[docID] = freqs
	for w, f := range freqs {
		if s.wordToDocumentFreqs[w] == nil {
			s.wordToDocumentFreqs[w] = make(map[int]float64)
		}
		s.wordToDocumentFreqs[w][docID] = f
	}
	return nil
}

func (s *SearchServer) insertDocumentID(docID int) {
	i := sort.SearchInts(s.documentIDs, docID)
	s.documentIDs = append(s.documentIDs, 0)
	copy(s.documentIDs[i+1:], s.documentIDs[i:])
	s.documentIDs[i] = docID
}

func (s *SearchServer) removeDocumentID(docID int) {
	i := sort.SearchInts(s.documentIDs, docID)
	if i < len(s.documentIDs) && s.documentIDs[i] == docID {
		s.documentIDs = append(s.documentIDs[:i], s.documentIDs[i+1:]...)
	}
}

// DocumentCount returns the number of live documents.
func (s *SearchServer) DocumentCount() int {
	return len(s.documents)
}

// IterateIDs returns live document ids in ascending order.
func (s *SearchServer) IterateIDs() []int {
	out := make([]int, len(s.documentIDs))
	copy(out, s.documentIDs)
	return out
}

// GetWordFrequencies returns docID's forward-index entry, or an empty map if
// docID is unknown. It never fails.
func (s *SearchServer) GetWordFrequencies(docID int) map[string]float64 {
	if freqs, ok := s.idToWordFreqs[docID]; ok {
		return freqs
	}
	return map[string]float64{}
}

func (s *SearchServer) computeWordInverseDocumentFreq(word string) float64 {
	return math.Log(float64(s.DocumentCount()) / float64(len(s.wordToDocumentFreqs[word])))
}

// DocumentPredicate decides whether a document belongs in a result set.
type DocumentPredicate func(docID int, status Status, rating int) bool

func statusPredicate(status Status) DocumentPredicate {
	return func(_ int, docStatus Status, _ int) bool { return docStatus == status }
}

// FindTopDocuments runs a sequential search for rawQuery, restricted to
// StatusActual documents.
func (s *SearchServer) FindTopDocuments(rawQuery string) ([]Document, error) {
	return s.FindTopDocumentsBy(rawQuery, statusPredicate(StatusActual))
}

// FindTopDocumentsStatus runs a sequential search restricted to status.
func (s *SearchServer) FindTopDocumentsStatus(rawQuery string, status Status) ([]Document, error) {
	return s.FindTopDocumentsBy(rawQuery, statusPredicate(status))
}

// FindTopDocumentsBy runs a sequential search with a caller-supplied
// predicate, ranks the matches, and truncates to MaxResultDocumentCount.
func (s *SearchServer) FindTopDocumentsBy(rawQuery string, keep DocumentPredicate) ([]Document, error) {
	query, err := s.parseQuery(rawQuery, true)
	if err != nil {
		return nil, err
	}
	matched := s.findAllDocuments(query, keep)
	rankDocuments(matched)
	if len(matched) > MaxResultDocumentCount {
		matched = matched[:MaxResultDocumentCount]
	}
	return matched, nil
}

func (s *SearchServer) findAllDocuments(query Query, keep DocumentPredicate) []Document {
	accumulator := make(map[int]float64)
	for _, word := range query.PlusWords {
		postings, ok := s.wordToDocumentFreqs[word]
		if !ok {
			continue
		}
		idf := s.computeWordInverseDocumentFreq(word)
		for docID, tf := range postings {
			data := s.documents[docID]
			if keep(docID, data.status, data.rating) {
				accumulator[docID] += tf * idf
			}
		}
	}
	for _, word := range query.MinusWords {
		postings, ok := s.wordToDocumentFreqs[word]
		if !ok {
			continue
		}
		for docID := range postings {
			delete(accumulator, docID)
		}
	}

	matched := make([]Document, 0, len(accumulator))
	for docID, relevance := range accumulator {
		matched = append(matched, Document{ID: docID, Relevance: relevance, Rating: s.documents[docID].rating})
	}
	return matched
}

// rankDocuments sorts docs so that, within Epsilon of relevance, higher
// rating wins, and otherwise higher relevance wins.
func rankDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		if math.Abs(a.Relevance-b.Relevance) < Epsilon {
			return a.Rating > b.Rating
		}
		return a.Relevance > b.Relevance
	})
}

// RemoveDocument removes docID and prunes any posting list left empty by its
// removal, so later idf computations never divide by a zero document
// frequency (see DESIGN.md).
func (s *SearchServer) RemoveDocument(docID int) {
	for word := range s.idToWordFreqs[docID] {
		delete(s.wordToDocumentFreqs[word], docID)
		if len(s.wordToDocumentFreqs[word]) == 0 {
			delete(s.wordToDocumentFreqs, word)
		}
	}
	delete(s.documents, docID)
	delete(s.idToWordFreqs, docID)
	s.removeDocumentID(docID)
}

// MatchDocument returns the sorted, deduplicated plus-words of rawQuery that
// occur in docID, or an empty slice if any minus-word occurs in docID.
func (s *SearchServer) MatchDocument(rawQuery string, docID int) ([]string, Status, error) {
	data, ok := s.documents[docID]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %d", ErrOutOfRange, docID)
	}
	query, err := s.parseQuery(rawQuery, true)
	if err != nil {
		return nil, 0, err
	}
	for _, word := range query.MinusWords {
		if _, ok := s.wordToDocumentFreqs[word][docID]; ok {
			return []string{}, data.status, nil
		}
	}
	matched := make([]string, 0, len(query.PlusWords))
	for _, word := range query.PlusWords {
		if _, ok := s.wordToDocumentFreqs[word][docID]; ok {
			matched = append(matched, word)
		}
	}
	return matched, data.status, nil
}
