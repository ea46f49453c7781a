package enrich

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/enricher"
)

// previewColumns are the columns shown in the terminal preview.
var previewColumns = []string{
	models.ColDebugNameUsed,
	models.ColConfidenceScore,
	models.ColDebugMatchScore,
	models.ColTopPaperTitle,
	models.ColCompanySummaryLine,
}

const previewCellWidth = 40

// RenderPreview renders the first n rows as a table.
func RenderPreview(rows []models.EnrichedRow, n int) string {
	if n <= 0 || len(rows) == 0 {
		return ""
	}
	if n > len(rows) {
		n = len(rows)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(previewColumns)+1)
	header = append(header, "#")
	for _, col := range previewColumns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for i, r := range rows[:n] {
		row := make(table.Row, 0, len(previewColumns)+1)
		row = append(row, i+1)
		for _, col := range previewColumns {
			row = append(row, r.Record[col])
		}
		tw.AppendRow(row)
	}

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}
	for i, col := range previewColumns {
		cfg := table.ColumnConfig{Number: i + 2, WidthMax: previewCellWidth, AlignHeader: text.AlignLeft}
		if col == models.ColDebugMatchScore {
			cfg.Align = text.AlignRight
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// RenderSummary renders a batch summary as a two-column table.
func RenderSummary(s enricher.BatchSummary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Run summary", ""})
	tw.AppendRows([]table.Row{
		{"Rows enriched", s.Rows},
		{"Rows skipped", s.SkippedRows},
		{"Authors matched", s.Matched},
		{"Papers found", s.PapersFound},
		{"Person work lines", s.WorkLines},
		{"Company summaries", s.CompanyLines},
		{"Cache hits", s.CacheHits},
	})

	if len(s.TopTopics) > 0 {
		topics := make([]string, 0, len(s.TopTopics))
		for _, tc := range s.TopTopics {
			topics = append(topics, tc.Topic+" ("+strconv.Itoa(tc.Count)+")")
		}
		tw.AppendRow(table.Row{"Top topics", strings.Join(topics, ", ")})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 60}})
	return tw.Render()
}
