package enricher

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/mapreduce"
)

// summaryTopTopics is how many topics a BatchSummary ranks.
const summaryTopTopics = 5

// ProgressFunc is told after each row how many of total rows are done.
type ProgressFunc func(done, total int)

// BatchSummary describes a finished (or interrupted) batch.
type BatchSummary struct {
	Rows         int                    `json:"rows" yaml:"rows"`
	Matched      int                    `json:"matched" yaml:"matched"`
	PapersFound  int                    `json:"papers_found" yaml:"papers_found"`
	WorkLines    int                    `json:"work_lines" yaml:"work_lines"`
	CompanyLines int                    `json:"company_lines" yaml:"company_lines"`
	CacheHits    int                    `json:"cache_hits" yaml:"cache_hits"`
	TopTopics    []mapreduce.TopicCount `json:"top_topics" yaml:"top_topics"`
	SkippedRows  int                    `json:"skipped_rows" yaml:"skipped_rows"`
}

// EnrichBatch enriches rows in order, up to settings.MaxRows, pausing
// settings.PerRowDelay after every row including the last. Rows are never
// processed concurrently. If ctx is cancelled the rows finished so far are
// returned along with the context error.
func (e *Enricher) EnrichBatch(ctx context.Context, rows []models.LeadRecord, settings models.Settings, progress ProgressFunc) ([]models.EnrichedRow, BatchSummary, error) {
	if err := settings.Validate(); err != nil {
		return nil, BatchSummary{}, err
	}

	total := min(len(rows), settings.MaxRows)
	out := make([]models.EnrichedRow, 0, total)
	e.logger.Info("starting batch", "rows", total, "skipped", len(rows)-total)

	for i := 0; i < total; i++ {
		enriched, err := e.EnrichRow(ctx, rows[i], settings)
		if err != nil {
			return out, Summarize(out, len(rows)-len(out)), err
		}
		out = append(out, enriched)
		e.logger.Info("enriched row",
			"row", i,
			"name", enriched.Fields.DebugNameUsed,
			"score", enriched.Fields.DebugMatchScore,
			"cache_hit", enriched.CacheHit,
		)
		if progress != nil {
			progress(i+1, total)
		}

		if err := e.sleep(ctx, settings.PerRowDelay); err != nil {
			return out, Summarize(out, len(rows)-len(out)), fmt.Errorf("batch interrupted after %d rows: %w", len(out), err)
		}
	}

	return out, Summarize(out, len(rows)-total), nil
}

// Summarize tallies enriched rows. skipped is the number of input rows that
// were not processed.
func Summarize(rows []models.EnrichedRow, skipped int) BatchSummary {
	s := BatchSummary{Rows: len(rows), SkippedRows: skipped}

	intermediate := make([]map[string]int, 0, len(rows))
	for _, r := range rows {
		f := r.Fields
		if f.DebugAuthorMatched {
			s.Matched++
		}
		if f.DebugPapersFound {
			s.PapersFound++
		}
		if f.PersonWorkSource == models.SourcePapers {
			s.WorkLines++
		}
		if f.CompanySummarySrc == models.SourceWebsite {
			s.CompanyLines++
		}
		if r.CacheHit {
			s.CacheHits++
		}
		if f.Topics != "" {
			intermediate = append(intermediate, mapreduce.Map(strings.Split(f.Topics, ", ")))
		}
	}
	s.TopTopics = mapreduce.TopTopics(mapreduce.Reduce(intermediate), summaryTopTopics)
	return s
}
