// Package enrich implements the enrich command.
package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/lead-enricher/internal/common"
	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/caching"
	"github.com/dtnitsch/lead-enricher/pkg/catalog"
	"github.com/dtnitsch/lead-enricher/pkg/enricher"
	"github.com/dtnitsch/lead-enricher/pkg/extractor"
	"github.com/dtnitsch/lead-enricher/pkg/fetcher"
)

// MaxPerRowDelay caps the delay accepted from the command line.
const MaxPerRowDelay = 5 * time.Second

// Flags are the enrich command's flags.
var Flags = []cli.Flag{
	&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "lead CSV to enrich", Required: true},
	&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
	&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: FormatCSV, Usage: "output format: csv, json or yaml"},
	&cli.StringFlag{Name: "columns", Value: ColumnsAll, Usage: "output columns: all or apollo"},
	&cli.IntFlag{Name: "preview", Value: 10, Usage: "rows to show in the terminal preview (0 disables)"},
	&cli.BoolFlag{Name: "no-cache", Usage: "keep the cache in memory for this run only"},
	&cli.IntFlag{Name: "num-papers", Value: models.DefaultSettings().NumPapers, Usage: "works to fetch per matched author (1-20)"},
	&cli.IntFlag{Name: "match-threshold", Value: models.DefaultSettings().MatchScoreThreshold, Usage: "minimum name match score (30-95)"},
	&cli.IntFlag{Name: "max-rows", Value: models.DefaultSettings().MaxRows, Usage: "rows to process (1-500)"},
	&cli.DurationFlag{Name: "per-row-delay", Value: models.DefaultSettings().PerRowDelay, Usage: "pause after each row (max 5s)"},
	&cli.BoolFlag{Name: "safe-mode", Value: true, Usage: "never scrape LinkedIn; LinkedIn columns pass through"},
	&cli.StringFlag{Name: "user-agent", Usage: "User-Agent header for outbound requests"},
	&cli.IntFlag{Name: "retries", Usage: "attempts per request"},
	&cli.StringFlag{Name: "openalex-mailto", EnvVars: []string{"OPENALEX_MAILTO"}, Usage: "contact email for the OpenAlex polite pool"},
	&cli.StringFlag{Name: "semantic-scholar-api-key", EnvVars: []string{"SEMANTIC_SCHOLAR_API_KEY"}, Usage: "Semantic Scholar API key"},
}

// RunOptions is everything a run needs once flags and config are resolved.
type RunOptions struct {
	Config      models.Config
	Input       string
	Output      string
	Format      string
	Columns     string
	Preview     int
	NoCache     bool
	Interactive bool // draw progress and tables on Stderr
	Stdout      io.Writer
	Stderr      io.Writer
	Sleep       fetcher.SleepFunc
}

func EnrichAction(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	ApplyFlags(c, &cfg)

	logger, closeLog, err := common.NewLogger(c.App.ErrWriter, common.LogOptions{
		Quiet:   c.Bool("quiet"),
		Verbose: c.Bool("verbose"),
		File:    c.String("log-file"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	return Run(c.Context, RunOptions{
		Config:      cfg,
		Input:       c.String("input"),
		Output:      c.String("output"),
		Format:      c.String("format"),
		Columns:     c.String("columns"),
		Preview:     c.Int("preview"),
		NoCache:     c.Bool("no-cache"),
		Interactive: !c.Bool("quiet") && common.IsTerminal(c.App.ErrWriter),
		Stdout:      c.App.Writer,
		Stderr:      c.App.ErrWriter,
	}, logger)
}

// ApplyFlags overlays explicitly set flags (or their env vars) on cfg.
func ApplyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("num-papers") {
		cfg.Settings.NumPapers = c.Int("num-papers")
	}
	if c.IsSet("match-threshold") {
		cfg.Settings.MatchScoreThreshold = c.Int("match-threshold")
	}
	if c.IsSet("max-rows") {
		cfg.Settings.MaxRows = c.Int("max-rows")
	}
	if c.IsSet("per-row-delay") {
		cfg.Settings.PerRowDelay = c.Duration("per-row-delay")
	}
	if c.IsSet("safe-mode") {
		cfg.Settings.SafeMode = c.Bool("safe-mode")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("retries") {
		cfg.Retries = c.Int("retries")
	}
	if c.IsSet("openalex-mailto") {
		cfg.OpenAlex.Mailto = c.String("openalex-mailto")
	}
	if c.IsSet("semantic-scholar-api-key") {
		cfg.SemanticScholar.APIKey = c.String("semantic-scholar-api-key")
	}
}

// Run reads the input, enriches it and writes the output. Invalid settings,
// options or input fail before any row is processed. An interrupted batch
// still writes the rows it finished.
func Run(ctx context.Context, opts RunOptions, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	settings := opts.Config.Settings
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.PerRowDelay > MaxPerRowDelay {
		return fmt.Errorf("%w: per_row_delay must be at most %s, got %s", models.ErrInvalidSettings, MaxPerRowDelay, settings.PerRowDelay)
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return err
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	header, rows, err := ReadLeads(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.Input, err)
	}
	columns, err := OutputColumns(header, opts.Columns)
	if err != nil {
		return err
	}
	logger.Info("loaded leads", "input", opts.Input, "rows", len(rows), "columns", len(header))

	store, release, err := openStore(opts, logger)
	if err != nil {
		return err
	}
	defer release()

	e := newEnricher(opts, store, logger)

	var progress enricher.ProgressFunc
	if opts.Interactive {
		var finish func()
		progress, finish = newProgress(opts.Stderr, min(len(rows), settings.MaxRows))
		defer finish()
	}

	start := time.Now()
	enriched, summary, batchErr := e.EnrichBatch(ctx, rows, settings, progress)
	logger.Info("batch finished",
		"rows", summary.Rows,
		"matched", summary.Matched,
		"cache_hits", summary.CacheHits,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)

	if err := writeResults(opts, columns, enriched, summary); err != nil {
		return err
	}

	if opts.Interactive {
		if preview := RenderPreview(enriched, opts.Preview); preview != "" {
			fmt.Fprintln(opts.Stderr, preview)
		}
		fmt.Fprintln(opts.Stderr, RenderSummary(summary))
	}
	return batchErr
}

func openStore(opts RunOptions, logger *slog.Logger) (caching.Store, func(), error) {
	if opts.NoCache {
		return caching.NewMemoryCache(), func() {}, nil
	}
	cache, err := caching.NewDiskCache(opts.Config.CacheDir, logger)
	if err != nil {
		return nil, nil, err
	}
	release, err := cache.LockShared()
	if err != nil {
		return nil, nil, err
	}
	return cache, release, nil
}

func newEnricher(opts RunOptions, store caching.Store, logger *slog.Logger) *enricher.Enricher {
	cfg := opts.Config
	fetchOpts := []fetcher.Option{
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithRetries(cfg.Retries),
		fetcher.WithBackoff(cfg.Backoff),
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithLogger(logger),
	}
	enrichOpts := []enricher.Option{enricher.WithLogger(logger)}
	if opts.Sleep != nil {
		fetchOpts = append(fetchOpts, fetcher.WithSleep(opts.Sleep))
		enrichOpts = append(enrichOpts, enricher.WithSleep(opts.Sleep))
	}
	http := fetcher.NewFetcher(fetchOpts...)

	return enricher.New(
		store,
		catalog.NewOpenAlex(cfg.OpenAlex, http, store, logger),
		catalog.NewSemanticScholar(cfg.SemanticScholar, http, store, logger),
		extractor.NewExtractor(http, logger),
		enrichOpts...,
	)
}

func writeResults(opts RunOptions, columns []string, rows []models.EnrichedRow, summary enricher.BatchSummary) error {
	if opts.Output == "" || opts.Output == "-" {
		return WriteOutput(opts.Stdout, opts.Format, columns, rows, summary)
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteOutput(f, opts.Format, columns, rows, summary); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
