package enrich

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/lead-enricher/models"
)

// ErrEmptyInput is returned when the CSV has no header row.
var ErrEmptyInput = errors.New("input has no header row")

// ReadLeads parses a CSV lead export. The header order is returned so output
// can keep the input's column order. Any malformed line fails the whole read.
func ReadLeads(r io.Reader) ([]string, []models.LeadRecord, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyInput
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows := make([]models.LeadRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(models.LeadRecord, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
