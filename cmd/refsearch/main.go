// Copyright 2026 Trafficlens Systems
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
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/trafficlens/refsearch"
	"github.com/trafficlens/refsearch/batch"
	"github.com/trafficlens/refsearch/catalog"
	"github.com/trafficlens/refsearch/core"
	"github.com/trafficlens/refsearch/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "refsearch",
		Usage: "Identify search engines and keywords behind referrer URLs",
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
				Name:      "classify",
				Usage:     "Classify one or more referrer URLs",
				ArgsUsage: "URL [URL...]",
				Action:    classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "definitions",
						Aliases: []string{"f"},
						Usage:   "Path to a YAML definitions document (default: bundled catalog)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB directory with persisted catalogs",
					},
				},
			},
			{
				Name:      "batch",
				Usage:     "Classify a file of referrer URLs, one per line",
				ArgsUsage: "FILE",
				Action:    batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "definitions",
						Aliases: []string{"f"},
						Usage:   "Path to a YAML definitions document (default: bundled catalog)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent classification workers",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N referrers",
						Value: 1000,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Compile a definitions document and persist the catalog",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "definitions",
						Aliases:  []string{"f"},
						Usage:    "Path to a YAML definitions document",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB directory",
						Required: true,
					},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Look up an engine by name or a catalog pattern by host",
				ArgsUsage: "NAME-OR-HOST",
				Action:    lookupCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "definitions",
						Aliases: []string{"f"},
						Usage:   "Path to a YAML definitions document (default: bundled catalog)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newService builds a Service from the shared definition/db flags.
// The returned cleanup closes the repository when one was opened.
func newService(ctx context.Context, c *cli.Context) (*refsearch.Service, func(), error) {
	opts := []refsearch.ServiceOption{}
	cleanup := func() {}

	if path := c.String("definitions"); path != "" {
		document, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading definitions: %w", err)
		}
		opts = append(opts, refsearch.WithDefinitions(document))
	}

	if dbPath := c.String("db"); dbPath != "" {
		backend, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		repo := badger.NewCatalogRepository(backend)
		opts = append(opts, refsearch.WithCatalogRepository(repo))
		cleanup = func() {
			if err := repo.Close(); err != nil {
				slog.Error("error closing catalog repository", "err", err)
			}
		}
	}

	svc, err := refsearch.New(ctx, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func classifyCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one referrer URL is required")
	}

	svc, cleanup, err := newService(context.Background(), c)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, referrer := range c.Args().Slice() {
		m, ok := svc.Classify(referrer)
		printResult(c.App.Writer, referrer, m, ok)
	}
	return nil
}

func batchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one input file is required (use - for stdin)")
	}

	referrers, err := readReferrers(c.Args().First(), c.App.Reader)
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(context.Background(), c)
	if err != nil {
		return err
	}
	defer cleanup()

	tracker := batch.NewProgressTracker(c.App.ErrWriter, len(referrers), c.Int("report-interval"))
	pipeline, err := batch.NewPipeline(svc,
		batch.WithPoolSize(c.Int("pool-size")),
		batch.WithProgress(tracker))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	err = pipeline.Run(context.Background(), referrers, func(r batch.Result) {
		printResult(c.App.Writer, r.Referrer, r.Match, r.Matched)
	})
	if err != nil {
		return err
	}

	slog.Info("batch classification finished",
		"referrers", len(referrers), "elapsed", tracker.Elapsed())
	return nil
}

func importCommand(c *cli.Context) error {
	document, err := os.ReadFile(c.String("definitions"))
	if err != nil {
		return fmt.Errorf("reading definitions: %w", err)
	}

	cat, err := catalog.Build(document)
	if err != nil {
		return fmt.Errorf("compiling definitions: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	repo := badger.NewCatalogRepository(backend)
	defer repo.Close()

	if err := repo.PutCatalog(context.Background(), cat); err != nil {
		return fmt.Errorf("persisting catalog: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "imported %d patterns (fingerprint %016x)\n",
		cat.Len(), uint64(cat.Fingerprint()))
	return nil
}

func lookupCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one engine name or host is required")
	}
	subject := c.Args().First()

	svc, cleanup, err := newService(context.Background(), c)
	if err != nil {
		return err
	}
	defer cleanup()

	store := svc.Store()

	// Try it as a catalog pattern first, then as an engine name.
	if def, ok := store.DefinitionFor(subject); ok {
		fmt.Fprintf(c.App.Writer, "engine: %s\n", def.Name)
		params := make([]string, len(def.Params))
		for i, p := range def.Params {
			params[i] = p.Source()
		}
		fmt.Fprintf(c.App.Writer, "params: %s\n", strings.Join(params, ", "))
		if def.Backlink != "" {
			fmt.Fprintf(c.App.Writer, "backlink: %s\n", def.Backlink)
		}
		if len(def.Charsets) > 0 {
			fmt.Fprintf(c.App.Writer, "charsets: %s\n", strings.Join(def.Charsets, ", "))
		}
		return nil
	}

	url := svc.URLFromName(subject)
	if url == core.URLUnknown {
		return fmt.Errorf("no engine or pattern named %q", subject)
	}
	fmt.Fprintf(c.App.Writer, "url: %s\n", url)
	return nil
}

func printResult(w io.Writer, referrer string, m *core.Match, matched bool) {
	if !matched {
		fmt.Fprintf(w, "%s\t-\t-\n", referrer)
		return
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", referrer, m.Engine, m.Label())
}

func readReferrers(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var referrers []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		referrers = append(referrers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return referrers, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
