// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	scout "github.com/poiesic/scout"
	"github.com/poiesic/scout/ai"
	"github.com/poiesic/scout/core"
	"github.com/poiesic/scout/search"
)

func main() {
	// Optional .env for local development. Absence is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "scout",
		Usage: "Semantic people search over multi-category profile embeddings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"SCOUT_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest actor profiles from a JSON file into the database",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Path to actors JSON file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Delete all existing vectors before ingesting",
					},
					&cli.BoolFlag{
						Name:  "skip-embed",
						Usage: "Rebuild stored profiles only, leaving vectors untouched",
					},
				}, aiFlags()...),
			},
			{
				Name:      "query",
				Usage:     "Run a single search query",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   search.DefaultTopK,
					},
					&cli.BoolFlag{
						Name:  "no-rerank",
						Usage: "Skip the LLM reranking pass",
					},
					&cli.BoolFlag{
						Name:  "evaluate",
						Usage: "Judge result quality with the evaluation oracle",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "Print the parsed intent before results",
					},
				}, aiFlags()...),
			},
			{
				Name:   "interactive",
				Usage:  "Run queries interactively from stdin",
				Action: interactiveCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   search.DefaultTopK,
					},
					&cli.BoolFlag{
						Name:  "no-rerank",
						Usage: "Skip the LLM reranking pass",
					},
				}, aiFlags()...),
			},
			{
				Name:      "queries",
				Usage:     "Run a batch of queries from a file, one per line",
				ArgsUsage: "<queries file>",
				Action:    queriesCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return per query",
						Value:   search.DefaultTopK,
					},
					&cli.BoolFlag{
						Name:  "no-rerank",
						Usage: "Skip the LLM reranking pass",
					},
					&cli.BoolFlag{
						Name:  "evaluate",
						Usage: "Judge each result set with the evaluation oracle",
					},
				}, aiFlags()...),
			},
			{
				Name:   "stats",
				Usage:  "Print record counts per namespace",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
						EnvVars:  []string{"SCOUT_DB"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags returns the flags shared by every command that talks to the
// database and the AI services.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
			EnvVars:  []string{"SCOUT_DB"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"SCOUT_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"SCOUT_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "chat-host",
			Usage:   "Chat service host URL for parsing, reranking, and evaluation",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"SCOUT_CHAT_HOST"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model name for parsing, reranking, and evaluation",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"SCOUT_CHAT_MODEL"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI services",
			EnvVars: []string{"SCOUT_API_TOKEN"},
		},
	}
}

func openEngine(c *cli.Context) (*scout.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := scout.NewEngine(c.String("db"), scout.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("data"))
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	var actors []*core.Actor
	if err := json.Unmarshal(data, &actors); err != nil {
		return fmt.Errorf("failed to parse actors JSON: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	if c.Bool("skip-embed") {
		count, err := pipeline.RefreshProfiles(ctx, actors)
		if err != nil {
			return fmt.Errorf("profile refresh failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Refreshed %d profiles\n", count)
		return nil
	}

	if c.Bool("reset") {
		fmt.Fprintln(os.Stderr, "Resetting existing vectors...")
		if err := pipeline.Reset(ctx); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Ingesting %d actors...\n", len(actors))

	stats, err := pipeline.Ingest(ctx, actors)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d actors, %d profiles\n", stats.Actors, stats.Profiles)
	for _, namespace := range core.Namespaces() {
		fmt.Fprintf(os.Stderr, "  %s: %d chunks\n", namespace, stats.Chunks[namespace])
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	retriever, err := engine.NewRetriever()
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	return runQuery(context.Background(), retriever, query, &search.SearchOptions{
		TopK:   c.Int("top-k"),
		Rerank: !c.Bool("no-rerank"),
	}, c.Bool("debug"), c.Bool("evaluate"))
}

func interactiveCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	retriever, err := engine.NewRetriever()
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	opts := &search.SearchOptions{
		TopK:   c.Int("top-k"),
		Rerank: !c.Bool("no-rerank"),
	}

	fmt.Println("Enter a query, or \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("scout> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}
		if err := runQuery(context.Background(), retriever, query, opts, false, false); err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		}
	}
	return scanner.Err()
}

func queriesCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("queries file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read queries file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	retriever, err := engine.NewRetriever()
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	opts := &search.SearchOptions{
		TopK:   c.Int("top-k"),
		Rerank: !c.Bool("no-rerank"),
	}

	ctx := context.Background()
	for _, line := range strings.Split(string(data), "\n") {
		query := strings.TrimSpace(line)
		if query == "" || strings.HasPrefix(query, "#") {
			continue
		}
		fmt.Printf("=== %s\n", query)
		if err := runQuery(ctx, retriever, query, opts, false, c.Bool("evaluate")); err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		}
		fmt.Println()
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := scout.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	stats, err := engine.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Database: %s\n", c.String("db"))
	fmt.Printf("Profiles: %d\n", stats["profiles"])
	for _, namespace := range core.Namespaces() {
		fmt.Printf("  %s: %d vectors\n", namespace, stats[string(namespace)])
	}
	return nil
}

// runQuery executes one search and prints the ranked results to stdout.
func runQuery(ctx context.Context, retriever *search.Retriever, query string, opts *search.SearchOptions, debug, evaluate bool) error {
	response, err := retriever.Search(ctx, query, opts)
	if err != nil {
		return err
	}

	if debug {
		intentJSON, err := json.MarshalIndent(response.Intent, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render intent: %w", err)
		}
		fmt.Printf("Intent:\n%s\n\n", intentJSON)
	}

	if len(response.Degraded) > 0 {
		names := make([]string, len(response.Degraded))
		for i, category := range response.Degraded {
			names[i] = string(category)
		}
		fmt.Fprintf(os.Stderr, "warning: categories degraded: %s\n", strings.Join(names, ", "))
	}

	if len(response.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range response.Results {
		candidate := response.Candidates[i]
		fmt.Printf("%2d. %-24s %.3f", i+1, result.ActorID, result.Score)
		if candidate.Profile != nil {
			detail := candidate.Profile.Name
			if candidate.Profile.CurrentRole != "" {
				detail += " (" + candidate.Profile.CurrentRole + ")"
			}
			if candidate.Profile.Location != "" {
				detail += ", " + candidate.Profile.Location
			}
			fmt.Printf("  %s", detail)
		}
		fmt.Println()
		if candidate.Reason != "" {
			fmt.Printf("    %s\n", candidate.Reason)
		}
	}

	if evaluate {
		evaluation, err := retriever.Evaluate(ctx, query, response.Candidates, response.Intent)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		fmt.Printf("\nEvaluation: overall %.1f/10, precision %.2f\n", evaluation.OverallScore, evaluation.Precision)
		for _, issue := range evaluation.Issues {
			fmt.Printf("  issue: %s\n", issue)
		}
		if evaluation.Feedback != "" {
			fmt.Printf("  %s\n", evaluation.Feedback)
		}
		for _, suggestion := range evaluation.Suggestions {
			fmt.Printf("  suggestion: %s\n", suggestion)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
