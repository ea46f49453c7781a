// Package enricher turns lead rows into outreach-ready records by matching
// each person to a catalog author, pulling their top work and summarising
// their company website.
package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/caching"
	"github.com/dtnitsch/lead-enricher/pkg/catalog"
	"github.com/dtnitsch/lead-enricher/pkg/extractor"
	"github.com/dtnitsch/lead-enricher/pkg/fetcher"
	"github.com/dtnitsch/lead-enricher/pkg/matcher"
)

// searchLimit is how many author candidates are requested from each catalog.
const searchLimit = 5

// maxWorkLineTopics caps the topics quoted in the person work line.
const maxWorkLineTopics = 3

// Summarizer produces the company summary for a website.
type Summarizer interface {
	Summarize(ctx context.Context, website string) extractor.Summary
}

// Enricher runs the per-row pipeline against a primary and a fallback catalog.
type Enricher struct {
	cache      caching.Store
	primary    catalog.Catalog
	fallback   catalog.Catalog
	summarizer Summarizer
	sleep      fetcher.SleepFunc
	logger     *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLogger sets the logger for per-row decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSleep replaces the pause between batch rows.
func WithSleep(fn fetcher.SleepFunc) Option {
	return func(e *Enricher) {
		if fn != nil {
			e.sleep = fn
		}
	}
}

// New builds an Enricher. primary is always queried; fallback only when the
// primary gives no candidate at or above the match threshold.
func New(cache caching.Store, primary, fallback catalog.Catalog, summarizer Summarizer, opts ...Option) *Enricher {
	e := &Enricher{
		cache:      cache,
		primary:    primary,
		fallback:   fallback,
		summarizer: summarizer,
		sleep:      fetcher.SleepWithContext,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CacheKey identifies a row's enrichment in the cache.
func CacheKey(name, company string, numPapers int) string {
	return fmt.Sprintf("enrich:%s:%s:%d", name, company, numPapers)
}

// match is the best author seen so far and the catalog it came from.
type match struct {
	models.MatchResult
	catalog catalog.Catalog
}

// consider scores every candidate from cat and keeps any that strictly beats
// the current best, so earlier candidates and catalogs win ties.
func (m *match) consider(name string, cat catalog.Catalog, candidates []models.AuthorCandidate) {
	for i := range candidates {
		score := matcher.Similarity(name, candidates[i].Name)
		if score > m.Score {
			m.Author = &candidates[i]
			m.catalog = cat
			m.Score = score
		}
	}
}

// EnrichRow enriches a single lead. Remote failures degrade the output and
// are never returned; the only error is a cancelled context, in which case
// nothing is cached.
func (e *Enricher) EnrichRow(ctx context.Context, row models.LeadRecord, settings models.Settings) (models.EnrichedRow, error) {
	name := row.Name()
	company := row.Company()
	website := row.Website()

	key := CacheKey(name, company, settings.NumPapers)
	var cached models.EnrichedFields
	if caching.Load(e.cache, key, &cached) {
		e.logger.Debug("enrichment cache hit", "name", name, "company", company)
		return models.EnrichedRow{Record: row.Merge(cached.Columns()), Fields: cached, CacheHit: true}, nil
	}

	var best match
	if name != "" {
		best.consider(name, e.primary, e.primary.SearchAuthors(ctx, name, searchLimit))
		if !best.Matched() || best.Score < settings.MatchScoreThreshold {
			best.consider(name, e.fallback, e.fallback.SearchAuthors(ctx, name, searchLimit))
		}
	}
	best.Confidence = matcher.ConfidenceLabel(best.Score)
	result := best.MatchResult

	var top models.Work
	var works []models.Work
	if result.Matched() {
		works = best.catalog.GetAuthorWorks(ctx, result.Author.ID, settings.NumPapers)
		if len(works) > 0 {
			top = works[0]
		}
	}

	fields := models.EnrichedFields{
		PersonalizationHook: personalizationHook(name, top.Title),
		TopPaperTitle:       top.Title,
		TopPaperDate:        top.Date,
		Topics:              strings.Join(top.Topics, ", "),
		ConfidenceScore:     result.Confidence,
		HookSource:          models.HookInternal,
		PersonWorkSource:    models.SourceNone,
		CompanySummarySrc:   models.SourceNone,
		DebugNameUsed:       name,
		DebugAuthorMatched:  result.Matched(),
		DebugMatchScore:     result.Score,
		DebugPapersFound:    len(works) > 0,
	}
	if result.Matched() {
		fields.MatchedAuthor = matchedAuthorLine(result.Author)
		if result.Score >= settings.MatchScoreThreshold {
			if line := personWorkLine(name, top); line != "" {
				fields.PersonWorkLine = line
				fields.PersonWorkSource = models.SourcePapers
			}
		}
	}

	if website != "" {
		summary := e.summarizer.Summarize(ctx, website)
		fields.CompanySummaryLine = summary.Text
		fields.CompanySummarySrc = summary.Source
	}

	if err := ctx.Err(); err != nil {
		return models.EnrichedRow{}, fmt.Errorf("failed to enrich %q: %w", name, err)
	}

	caching.Save(e.cache, key, fields)
	return models.EnrichedRow{Record: row.Merge(fields.Columns()), Fields: fields, Match: result}, nil
}

func personalizationHook(name, title string) string {
	switch {
	case title != "":
		return fmt.Sprintf("I enjoyed your recent work, \"%s\", and thought it connects to [our product/idea].", title)
	case name != "":
		return fmt.Sprintf("I enjoyed learning about your work, %s.", name)
	default:
		return "I enjoyed your recent work."
	}
}

// personWorkLine renders `{name} works on "{title}", t1, t2, t3.`, omitting
// whichever clause is empty. It returns "" when both are.
func personWorkLine(name string, top models.Work) string {
	var parts []string
	if top.Title != "" {
		parts = append(parts, `"`+top.Title+`"`)
	}
	topics := top.Topics
	if len(topics) > maxWorkLineTopics {
		topics = topics[:maxWorkLineTopics]
	}
	if len(topics) > 0 {
		parts = append(parts, strings.Join(topics, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("%s works on %s.", name, strings.Join(parts, ", "))
}

var sourceLabels = map[string]string{
	models.SourceOpenAlex:        "OpenAlex",
	models.SourceSemanticScholar: "SemanticScholar",
}

func matchedAuthorLine(a *models.AuthorCandidate) string {
	label, ok := sourceLabels[a.Source]
	if !ok {
		label = a.Source
	}
	line := label + " | " + a.Name
	affs := strings.Join(a.Affiliations, ", ")
	if a.Source == models.SourceOpenAlex || affs != "" {
		line += " | " + affs
	}
	return line
}
