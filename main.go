package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/searchstack/engine/utils"
)

var (
	flagSeedPath   string
	flagStopWords  string
	flagConcurrent bool
	flagPageSize   int
	flagDebug      bool
)

func main() {
	root := &cobra.Command{
		Use:   "searchstack",
		Short: "In-memory TF-IDF search engine",
		Long:  "searchstack indexes a small document corpus in memory and serves ranked TF-IDF queries over it.",
		RunE:  runRepl,
	}
	root.PersistentFlags().StringVar(&flagSeedPath, "seed", "", "JSON file of seed documents (defaults to a small built-in corpus)")
	root.PersistentFlags().StringVar(&flagStopWords, "stop-words", "", "space separated stop words")
	root.PersistentFlags().BoolVar(&flagConcurrent, "concurrent", false, "use the parallel scorer for find")
	root.PersistentFlags().IntVar(&flagPageSize, "page-size", 5, "results per page")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(benchCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func setupLogging() {
	level := zerolog.InfoLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func buildServer() (*utils.SearchServer, error) {
	server, err := utils.NewSearchServer(flagStopWords)
	if err != nil {
		return nil, fmt.Errorf("constructing server: %w", err)
	}

	docs := defaultSeedDocuments
	if flagSeedPath != "" {
		loaded, err := loadSeedFile(flagSeedPath)
		if err != nil {
			return nil, err
		}
		docs = loaded
	}

	start := time.Now()
	if err := populateServer(server, docs); err != nil {
		return nil, fmt.Errorf("seeding documents: %w", err)
	}
	log.Info().Int("documents", server.DocumentCount()).Dur("elapsed", time.Since(start)).Msg("seeded search engine")
	return server, nil
}

func runRepl(cmd *cobra.Command, _ []string) error {
	setupLogging()
	server, err := buildServer()
	if err != nil {
		return err
	}
	return runREPL(server, replConfig{pageSize: flagPageSize, concurrent: flagConcurrent})
}

// benchCmd runs a fixed, newline-separated batch of queries through the
// parallel batch runner and reports timing, exercising ProcessQueriesJoined
// without requiring interactive input.
func benchCmd() *cobra.Command {
	var queriesPath string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a batch of queries and report timing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging()
			server, err := buildServer()
			if err != nil {
				return err
			}

			queries := []string{"cat", "dog -stray", "parrot"}
			if queriesPath != "" {
				data, err := os.ReadFile(queriesPath)
				if err != nil {
					return fmt.Errorf("reading queries file: %w", err)
				}
				queries = nil
				for _, line := range strings.Split(string(data), "\n") {
					if line = strings.TrimSpace(line); line != "" {
						queries = append(queries, line)
					}
				}
			}

			start := time.Now()
			joined := utils.ProcessQueriesJoined(server, queries)
			elapsed := time.Since(start)

			log.Info().Int("queries", len(queries)).Int("results", len(joined)).Dur("elapsed", elapsed).Msg("bench complete")
			for _, d := range joined {
				fmt.Printf("id=%d relevance=%.6f rating=%d\n", d.ID, d.Relevance, d.Rating)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&queriesPath, "queries", "", "newline separated queries file (defaults to a small built-in batch)")
	return cmd
}
