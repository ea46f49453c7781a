package models

import "encoding/json"

// Catalog source tags.
const (
	SourceOpenAlex        = "openalex"
	SourceSemanticScholar = "semanticscholar"
)

// AuthorCandidate is one author returned by a catalog search.
type AuthorCandidate struct {
	Source       string          `json:"source"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Affiliations []string        `json:"affiliations,omitempty"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}

// Work is a published paper normalized across catalogs.
type Work struct {
	Title  string   `json:"title"`
	Date   string   `json:"date,omitempty"` // year or ISO date, whichever the catalog has
	Topics []string `json:"topics,omitempty"`
}

// Confidence labels.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// MatchResult is the best candidate found for a lead, if any.
type MatchResult struct {
	Author     *AuthorCandidate `json:"author,omitempty"`
	Score      int              `json:"score"`
	Confidence string           `json:"confidence"`
}

// Matched reports whether any candidate was selected.
func (m MatchResult) Matched() bool {
	return m.Author != nil
}
