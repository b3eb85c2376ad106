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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/solvent"
	"github.com/poiesic/solvent/ai"
	"github.com/poiesic/solvent/embedding"
	"github.com/poiesic/solvent/match"
	"github.com/poiesic/solvent/server"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "solvent",
		Usage: "Match business pain points to product features",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "match-config",
						Usage: "Path to a YAML file overriding weights, thresholds, synonyms and intents",
					},
					&cli.BoolFlag{
						Name:  "text-only",
						Usage: "Run without an embedder; semantic scoring is disabled",
					},
				},
			},
			{
				Name:   "build",
				Usage:  "Embed the catalog and persist the vector cache",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Recompute every vector, ignoring reusable ones",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent embedding workers (0 picks a default)",
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Analyze one pain point from the command line",
				ArgsUsage: "<pain point description>",
				Action:    analyzeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "match-config",
						Usage: "Path to a YAML file overriding weights, thresholds, synonyms and intents",
					},
					&cli.BoolFlag{
						Name:  "text-only",
						Usage: "Run without an embedder; semantic scoring is disabled",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of recommendations",
						Value: 3,
					},
					&cli.StringFlag{
						Name:  "explain",
						Usage: "Print the per-layer score breakdown for one entry id instead of recommendations",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Report catalog and embedding cache state",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
				},
			},
		},
	}
}

// openAdvisor assembles an advisor from the command's flags. Commands that
// lack a flag read its zero value, which leaves the matching default in
// place.
func openAdvisor(c *cli.Context) (*solvent.Advisor, error) {
	opts := []solvent.Option{
		solvent.WithAIConfig(ai.NewConfig(
			ai.WithHost(c.String("embedding-host")),
			ai.WithModel(c.String("embedding-model")),
		)),
	}

	if c.Bool("text-only") {
		opts = append(opts, solvent.WithoutEmbedder())
	}

	if path := c.String("match-config"); path != "" {
		matchConfig, err := match.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading match config: %w", err)
		}
		opts = append(opts, solvent.WithMatchConfig(matchConfig))
	}

	return solvent.New(c.String("catalog"), c.String("db"), opts...)
}

func serveCommand(c *cli.Context) error {
	advisor, err := openAdvisor(c)
	if err != nil {
		return err
	}
	defer advisor.Close()

	srv := server.New(advisor, c.String("addr"))

	// Stop the listener on SIGINT/SIGTERM and let Start return
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}()

	return srv.Start()
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	advisor, err := openAdvisor(c)
	if err != nil {
		return err
	}
	defer advisor.Close()

	opts := []embedding.Option{
		embedding.WithBatchSize(c.Int("batch-size")),
		embedding.WithReportInterval(c.Int("report-interval")),
		embedding.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		embedding.WithProgress(os.Stderr),
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, embedding.WithPoolSize(size))
	}

	fmt.Fprintf(os.Stderr, "Catalog: %s\n", c.String("catalog"))
	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := advisor.BuildEmbeddings(ctx, c.Bool("force"), opts...); err != nil {
		return fmt.Errorf("embedding build failed: %w", err)
	}

	stats := advisor.Stats()
	fmt.Fprintf(os.Stderr, "Built %d vectors (%d dimensions, model %s)\n",
		stats.CachedVectors, stats.Dimensions, stats.Model)
	return nil
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: solvent analyze [options] <pain point description>")
	}

	advisor, err := openAdvisor(c)
	if err != nil {
		return err
	}
	defer advisor.Close()

	if entryID := c.String("explain"); entryID != "" {
		text, err := advisor.Explain(ctx, query, entryID)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	}

	analysis, err := advisor.Analyze(ctx, query, &solvent.AnalyzeOptions{
		MaxResults:      c.Int("max-results"),
		IncludeAnalysis: true,
	})
	if err != nil {
		return err
	}

	if analysis.CacheStale {
		fmt.Fprintln(os.Stderr, "warning: embedding cache is stale, run `solvent build` to refresh it")
	}

	if len(analysis.Recommendations) == 0 {
		fmt.Println("No matching features found.")
		return nil
	}

	fmt.Printf("Intent: %s\n\n", analysis.Intent)
	for i, rec := range analysis.Recommendations {
		fmt.Printf("%d. %s [%s] confidence %.2f (%s)\n",
			i+1, rec.Entry.Name, rec.Entry.ID, rec.Confidence, rec.Level)
		fmt.Printf("   %s\n", rec.Reasoning)
		fmt.Printf("   %s\n", rec.HowItHelps)
		fmt.Printf("   Next step: %s\n\n", rec.ImplementationNote)
	}

	if summary := analysis.Summary; summary != nil {
		fmt.Printf("Complexity: %s (%d words). Top confidence %.2f across %d matches.\n",
			summary.Complexity, summary.WordCount, summary.TopConfidence, summary.SolutionsFound)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	advisor, err := openAdvisor(c)
	if err != nil {
		return err
	}
	defer advisor.Close()

	stats := advisor.Stats()
	fmt.Printf("Version:        %s\n", stats.Version)
	fmt.Printf("Entries:        %d\n", stats.Entries)
	fmt.Printf("Categories:     %d\n", stats.Categories)
	fmt.Printf("Cached vectors: %d\n", stats.CachedVectors)
	if stats.Model != "" {
		fmt.Printf("Model:          %s\n", stats.Model)
		fmt.Printf("Dimensions:     %d\n", stats.Dimensions)
		fmt.Printf("Built at:       %s\n", stats.BuiltAt.Format(time.RFC3339))
	}
	fmt.Printf("Stale entries:  %d\n", stats.StaleEntries)
	fmt.Printf("Semantic ready: %t\n", stats.SemanticReady)

	if err := advisor.VerifyCache(); err != nil {
		fmt.Printf("\nCache check:    %v\n", err)
	} else {
		fmt.Printf("\nCache check:    ok\n")
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
