package enricher

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/mapreduce"
)

func leads(n int) []models.LeadRecord {
	rows := make([]models.LeadRecord, n)
	for i := range rows {
		rows[i] = models.LeadRecord{"full_name": fmt.Sprintf("Person %d", i)}
	}
	return rows
}

func TestEnrichBatch_RespectsMaxRowsAndDelays(t *testing.T) {
	f := newFixture(t)
	var slept []time.Duration
	f.enricher.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	var progress [][2]int

	s := settings(65)
	s.MaxRows = 5
	s.PerRowDelay = 250 * time.Millisecond

	out, summary, err := f.enricher.EnrichBatch(context.Background(), leads(10), s, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	if err != nil {
		t.Fatalf("EnrichBatch() error = %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("EnrichBatch() returned %d rows, want 5", len(out))
	}
	for i, r := range out {
		if want := fmt.Sprintf("Person %d", i); r.Fields.DebugNameUsed != want {
			t.Errorf("row %d name = %q, want %q", i, r.Fields.DebugNameUsed, want)
		}
	}
	if len(slept) != 5 {
		t.Errorf("delay invoked %d times, want 5", len(slept))
	}
	for i, d := range slept {
		if d != 250*time.Millisecond {
			t.Errorf("delay[%d] = %v, want 250ms", i, d)
		}
	}
	wantProgress := [][2]int{{1, 5}, {2, 5}, {3, 5}, {4, 5}, {5, 5}}
	if !reflect.DeepEqual(progress, wantProgress) {
		t.Errorf("progress = %v, want %v", progress, wantProgress)
	}
	if summary.Rows != 5 || summary.SkippedRows != 5 {
		t.Errorf("summary rows/skipped = %d/%d, want 5/5", summary.Rows, summary.SkippedRows)
	}
}

func TestEnrichBatch_InvalidSettings(t *testing.T) {
	f := newFixture(t)
	s := settings(65)
	s.MaxRows = 0

	_, _, err := f.enricher.EnrichBatch(context.Background(), leads(3), s, nil)
	if !errors.Is(err, models.ErrInvalidSettings) {
		t.Fatalf("EnrichBatch() error = %v, want ErrInvalidSettings", err)
	}
	if f.primary.searchCalls != 0 {
		t.Errorf("catalog searched %d times before validation failed", f.primary.searchCalls)
	}
}

func TestEnrichBatch_StopsWhenSleepIsCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.enricher.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	out, summary, err := f.enricher.EnrichBatch(ctx, leads(4), settings(65), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("EnrichBatch() error = %v, want context.Canceled", err)
	}
	if len(out) != 1 {
		t.Errorf("EnrichBatch() returned %d rows, want 1", len(out))
	}
	if summary.Rows != 1 || summary.SkippedRows != 3 {
		t.Errorf("summary rows/skipped = %d/%d, want 1/3", summary.Rows, summary.SkippedRows)
	}
	if f.cache.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", f.cache.Len())
	}
}

func TestSummarize(t *testing.T) {
	rows := []models.EnrichedRow{
		{Fields: models.EnrichedFields{
			DebugAuthorMatched: true, DebugPapersFound: true,
			PersonWorkSource: models.SourcePapers, CompanySummarySrc: models.SourceWebsite,
			Topics: "Biology, Genetics",
		}, CacheHit: true},
		{Fields: models.EnrichedFields{
			DebugAuthorMatched: true,
			PersonWorkSource:   models.SourceNone, CompanySummarySrc: models.SourceNone,
			Topics: "Genetics, Chemistry",
		}},
		{Fields: models.EnrichedFields{PersonWorkSource: models.SourceNone, CompanySummarySrc: models.SourceNone}},
	}

	got := Summarize(rows, 2)
	want := BatchSummary{
		Rows:         3,
		Matched:      2,
		PapersFound:  1,
		WorkLines:    1,
		CompanyLines: 1,
		CacheHits:    1,
		TopTopics: []mapreduce.TopicCount{
			{Topic: "Genetics", Count: 2},
			{Topic: "Biology", Count: 1},
			{Topic: "Chemistry", Count: 1},
		},
		SkippedRows: 2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}
