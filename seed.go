package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/searchstack/engine/utils"
)

// seedDocument is the on-disk shape of one document in a JSON seed file.
type seedDocument struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Status  string `json:"status"`
	Ratings []int  `json:"ratings"`
}

// defaultSeedDocuments is the built-in corpus used when no --seed file is
// given, small enough to exercise every query path from a cold start.
var defaultSeedDocuments = []seedDocument{
	{ID: 0, Text: "a colorful parrot with green wings", Status: "ACTUAL", Ratings: []int{8, 9, 7}},
	{ID: 1, Text: "a white cat with long whiskers and fluffy tail", Status: "ACTUAL", Ratings: []int{7, 8}},
	{ID: 2, Text: "a well groomed dog with short hair", Status: "ACTUAL", Ratings: []int{5, 5}},
	{ID: 3, Text: "a stray dog wandering the town", Status: "IRRELEVANT", Ratings: []int{1}},
	{ID: 4, Text: "a white parrot talking loudly", Status: "ACTUAL", Ratings: []int{9}},
	{ID: 5, Text: "a banned document about nothing in particular", Status: "BANNED", Ratings: nil},
}

// statusFromString parses the status names used in seed files; an empty
// name means ACTUAL.
func statusFromString(s string) (utils.Status, error) {
	switch s {
	case "ACTUAL", "":
		return utils.StatusActual, nil
	case "IRRELEVANT":
		return utils.StatusIrrelevant, nil
	case "BANNED":
		return utils.StatusBanned, nil
	case "REMOVED":
		return utils.StatusRemoved, nil
	default:
		return 0, fmt.Errorf("%w: unknown status %q", utils.ErrInvalidWord, s)
	}
}

// loadSeedFile reads a JSON array of seedDocument from path.
func loadSeedFile(path string) ([]seedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var docs []seedDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return docs, nil
}

// populateServer adds every seed document to server, stopping at the first
// rejected document (an atomic AddDocument failure never leaves a partial
// document visible, but the caller still needs to know which one failed).
func populateServer(server *utils.SearchServer, docs []seedDocument) error {
	for _, d := range docs {
		status, err := statusFromString(d.Status)
		if err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
		if err := server.AddDocument(d.ID, d.Text, status, d.Ratings); err != nil {
			return fmt.Errorf("document %d: %w", d.ID, err)
		}
	}
	return nil
}
