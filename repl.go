package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/searchstack/engine/utils"
)

// replConfig holds the values the interactive loop needs beyond the server
// itself.
type replConfig struct {
	pageSize   int
	concurrent bool
}

// runREPL drives the interactive query loop: add/find/match/remove/dedupe/
// stats/exit, backed by a rolling request log so "stats" can report the
// number of empty-result queries among the last utils.RollingWindowSize
// queries. Only queries run through the sequential scorer are recorded: with
// concurrent set, find calls the parallel scorer directly and bypasses the log.
func runREPL(server *utils.SearchServer, cfg replConfig) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "search> ",
		HistoryFile:     ".search_history.tmp",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    200,
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	requests := utils.NewRequestLog(server)

	fmt.Println("commands: find <query> | match <id> <query> | add <id> <text> | remove <id> | dedupe | stats | exit")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "find":
			runFind(requests, cfg, rest, server)
		case "match":
			runMatch(server, rest)
		case "add":
			runAdd(server, rest)
		case "remove":
			runRemove(server, rest)
		case "dedupe":
			runDedupe(server)
		case "stats":
			runStats(server, requests)
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func runFind(requests *utils.RequestLog, cfg replConfig, query string, server *utils.SearchServer) {
	find := requests.AddFindRequest
	if cfg.concurrent {
		find = func(q string) ([]utils.Document, error) { return server.FindTopDocumentsParallel(q) }
	}
	docs, err := find(query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search failed")
		return
	}
	if len(docs) == 0 {
		fmt.Println("no matches")
		return
	}
	pages := utils.Paginate(docs, cfg.pageSize)
	for i, page := range pages {
		fmt.Printf("-- page %d/%d --\n", i+1, len(pages))
		for _, d := range page {
			fmt.Printf("id=%d relevance=%.6f rating=%d\n", d.ID, d.Relevance, d.Rating)
		}
	}
}

func runMatch(server *utils.SearchServer, rest string) {
	idStr, query, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("usage: match <id> <query>")
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		fmt.Printf("invalid id %q\n", idStr)
		return
	}
	words, status, err := server.MatchDocument(query, id)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("match failed")
		return
	}
	fmt.Printf("status=%s words=%v\n", status, words)
}

func runAdd(server *utils.SearchServer, rest string) {
	idStr, text, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("usage: add <id> <text>")
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		fmt.Printf("invalid id %q\n", idStr)
		return
	}
	if err := server.AddDocument(id, text, utils.StatusActual, nil); err != nil {
		log.Error().Err(err).Int("id", id).Msg("add failed")
		return
	}
	fmt.Printf("added document %d\n", id)
}

func runRemove(server *utils.SearchServer, idStr string) {
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		fmt.Printf("invalid id %q\n", idStr)
		return
	}
	server.RemoveDocument(id)
	fmt.Printf("removed document %d\n", id)
}

func runDedupe(server *utils.SearchServer) {
	before := server.DocumentCount()
	utils.RemoveDuplicates(server, stdLogAdapter{})
	fmt.Printf("removed %d duplicate(s)\n", before-server.DocumentCount())
}

func runStats(server *utils.SearchServer, requests *utils.RequestLog) {
	fmt.Printf("documents=%d empty_result_requests=%d\n", server.DocumentCount(), requests.NoResultRequests())
}

// stdLogAdapter routes utils.Logger output through zerolog instead of the
// standard library logger the teacher's REPL used.
type stdLogAdapter struct{}

func (stdLogAdapter) Printf(format string, args ...any) {
	log.Info().Msg(fmt.Sprintf(format, args...))
}
