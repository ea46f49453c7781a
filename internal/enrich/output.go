package enrich

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/enricher"
)

// Column modes.
const (
	ColumnsAll    = "all"
	ColumnsApollo = "apollo"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ApolloColumns are the contact columns kept from an Apollo export.
var ApolloColumns = []string{
	"First Name",
	"Last Name",
	"Title",
	"Company Name",
	"Email",
	"Seniority",
	"Corporate Phone",
	"Industry",
	"Person Linkedin Url",
	"Website",
	"Company Linkedin Url",
	"Company Phone",
}

// apolloEnrichment follows ApolloColumns in apollo mode.
var apolloEnrichment = []string{
	models.ColPersonWorkLine,
	models.ColPersonWorkSource,
	models.ColCompanySummaryLine,
	models.ColCompanySummarySrc,
	models.ColDebugNameUsed,
	models.ColDebugAuthorMatched,
	models.ColDebugMatchScore,
	models.ColDebugPapersFound,
	models.ColConfidenceScore,
}

// OutputColumns picks the output columns for a column mode. "all" keeps every
// input column in order followed by any enrichment column not already present.
func OutputColumns(header []string, mode string) ([]string, error) {
	switch strings.ToLower(mode) {
	case "", ColumnsAll:
		cols := slices.Clone(header)
		for _, c := range models.EnrichedColumns {
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
		return cols, nil
	case ColumnsApollo:
		return append(slices.Clone(ApolloColumns), apolloEnrichment...), nil
	default:
		return nil, fmt.Errorf("unknown column mode %q (want %s or %s)", mode, ColumnsAll, ColumnsApollo)
	}
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatCSV, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want csv, json or yaml)", format)
	}
}

// Row is an output record restricted to, and ordered by, a column list.
type Row struct {
	Columns []string
	Values  models.LeadRecord
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Row) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, col := range r.Columns {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Values[col]},
		)
	}
	return node, nil
}

// Document is the JSON/YAML output shape.
type Document struct {
	Summary enricher.BatchSummary `json:"summary" yaml:"summary"`
	Rows    []Row                 `json:"rows" yaml:"rows"`
}

// WriteOutput writes rows in the given format. CSV carries only the rows;
// JSON and YAML also carry the batch summary.
func WriteOutput(w io.Writer, format string, columns []string, rows []models.EnrichedRow, summary enricher.BatchSummary) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return writeCSV(w, columns, rows)
	case FormatJSON, FormatYAML:
		doc := Document{Summary: summary, Rows: make([]Row, 0, len(rows))}
		for _, r := range rows {
			doc.Rows = append(doc.Rows, Row{Columns: columns, Values: r.Record})
		}
		if strings.ToLower(format) == FormatYAML {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("failed to encode YAML output: %w", err)
			}
			return enc.Close()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON output: %w", err)
		}
		return nil
	default:
		return ValidateFormat(format)
	}
}

func writeCSV(w io.Writer, columns []string, rows []models.EnrichedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(columns))
	for _, r := range rows {
		for i, col := range columns {
			record[i] = r.Record[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
