// Package extractor pulls a one-line company summary out of a website's root page.
package extractor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/lead-enricher/internal/common"
	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/fetcher"
)

// TextGetter is the part of fetcher.Fetcher the extractor needs.
type TextGetter interface {
	GetText(ctx context.Context, req fetcher.Request) (string, error)
}

// Summary is the extracted text and where it came from.
type Summary struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

var noSummary = Summary{Source: models.SourceNone}

type Extractor struct {
	http   TextGetter
	logger *slog.Logger
}

func NewExtractor(http TextGetter, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{http: http, logger: logger}
}

// Summarize fetches website and extracts its summary.
// Fetch failures and pages without a usable tag give an empty "none" summary.
func (e *Extractor) Summarize(ctx context.Context, website string) Summary {
	target := common.NormalizeWebsite(website)
	if target == "" {
		return noSummary
	}

	html, err := e.http.GetText(ctx, fetcher.Request{URL: target})
	if err != nil {
		e.logger.Warn("company page unavailable", "url", target, "error", err)
		return noSummary
	}

	text := ExtractSummary(html)
	if text == "" {
		e.logger.Debug("no summary tags found", "url", target)
		return noSummary
	}
	return Summary{Text: text, Source: models.SourceWebsite}
}

// ExtractSummary applies the extraction policy to an HTML document. First
// match wins: meta description, og:description, <title>, first <h1>.
func ExtractSummary(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, rule := range []struct{ attr, value string }{
		{"name", "description"},
		{"property", "og:description"},
	} {
		if text := metaContent(doc, rule.attr, rule.value); text != "" {
			return text
		}
	}

	if text := normalizeText(doc.Find("title").First().Text()); text != "" {
		return text
	}
	return normalizeText(doc.Find("h1").First().Text())
}

// metaContent finds the first <meta> whose attr equals value, ignoring case.
// The HTML parser already lower-cases attribute names and decodes entities.
func metaContent(doc *goquery.Document, attr, value string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if !ok || !strings.EqualFold(strings.TrimSpace(v), value) {
			return true
		}
		c, _ := s.Attr("content")
		if c = normalizeText(c); c != "" {
			content = c
			return false
		}
		return true
	})
	return content
}

// normalizeText collapses all runs of whitespace, newlines included.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
