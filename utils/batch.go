package utils

import "sync"

// FindTopDocumentser is satisfied by *SearchServer. It lets the batch runner
// and the rolling query log depend on search behavior without depending on
// the engine's internal representation.
type FindTopDocumentser interface {
	FindTopDocuments(rawQuery string) ([]Document, error)
}

// ProcessQueries runs FindTopDocuments for each query in parallel,
// preserving input order in the output. A query that fails to parse
// contributes a nil result at its position rather than aborting the batch.
func ProcessQueries(server FindTopDocumentser, queries []string) [][]Document {
	results := make([][]Document, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			docs, err := server.FindTopDocuments(q)
			if err != nil {
				return
			}
			results[i] = docs
		}(i, q)
	}
	wg.Wait()
	return results
}

// ProcessQueriesJoined flattens ProcessQueries into a single sequence,
// preserving per-query order and then intra-query rank order.
func ProcessQueriesJoined(server FindTopDocumentser, queries []string) []Document {
	var joined []Document
	for _, docs := range ProcessQueries(server, queries) {
		joined = append(joined, docs...)
	}
	return joined
}
