package enrich

import (
	"strings"
	"testing"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/enricher"
	"github.com/dtnitsch/lead-enricher/pkg/mapreduce"
)

func TestRenderPreview(t *testing.T) {
	rows := []models.EnrichedRow{
		{Record: models.LeadRecord{models.ColDebugNameUsed: "Jane Doe", models.ColConfidenceScore: "High"}},
		{Record: models.LeadRecord{models.ColDebugNameUsed: "John Roe"}},
	}

	if got := RenderPreview(rows, 0); got != "" {
		t.Errorf("RenderPreview(n=0) = %q, want empty", got)
	}

	got := RenderPreview(rows, 1)
	if !strings.Contains(got, "Jane Doe") || strings.Contains(got, "John Roe") {
		t.Errorf("RenderPreview(n=1) =\n%s", got)
	}
	if !strings.HasPrefix(got, "╭") {
		t.Errorf("RenderPreview() is not a rounded table:\n%s", got)
	}
	if all := RenderPreview(rows, 50); !strings.Contains(all, "John Roe") {
		t.Errorf("RenderPreview(n>len) =\n%s", all)
	}
}

func TestRenderSummary(t *testing.T) {
	got := RenderSummary(enricher.BatchSummary{
		Rows:      3,
		CacheHits: 2,
		TopTopics: []mapreduce.TopicCount{{Topic: "Biology", Count: 2}},
	})
	for _, want := range []string{"Rows enriched", "Cache hits", "Biology (2)"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderSummary() missing %q:\n%s", want, got)
		}
	}
}
