package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/caching"
	"github.com/dtnitsch/lead-enricher/pkg/fetcher"
)

// OpenAlex queries the OpenAlex REST API.
type OpenAlex struct {
	baseURL string
	mailto  string
	http    JSONGetter
	cache   caching.Store
	logger  *slog.Logger
}

var _ Catalog = (*OpenAlex)(nil)

func NewOpenAlex(cfg models.OpenAlexConfig, http JSONGetter, cache caching.Store, logger *slog.Logger) *OpenAlex {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = models.DefaultOpenAlexBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenAlex{
		baseURL: strings.TrimRight(baseURL, "/"),
		mailto:  strings.TrimSpace(cfg.Mailto),
		http:    http,
		cache:   cache,
		logger:  logger.With("catalog", models.SourceOpenAlex),
	}
}

func (c *OpenAlex) Source() string { return models.SourceOpenAlex }

type openAlexList struct {
	Results []json.RawMessage `json:"results"`
}

type openAlexAuthor struct {
	ID                    string         `json:"id"`
	DisplayName           string         `json:"display_name"`
	XConcepts             []displayNamed `json:"x_concepts"`
	LastKnownInstitutions []displayNamed `json:"last_known_institutions"`
}

type openAlexWork struct {
	Title           string         `json:"title"`
	DisplayName     string         `json:"display_name"`
	PublicationYear *int           `json:"publication_year"`
	PublicationDate string         `json:"publication_date"`
	Concepts        []displayNamed `json:"concepts"`
	Topics          []displayNamed `json:"topics"`
}

func (c *OpenAlex) list(ctx context.Context, path string, params url.Values) ([]json.RawMessage, error) {
	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}
	body, err := c.http.GetJSON(ctx, fetcher.Request{URL: c.baseURL + path, Params: params})
	if err != nil {
		return nil, err
	}
	var payload openAlexList
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode openalex response: %w", err)
	}
	return payload.Results, nil
}

// SearchAuthors finds authors whose display name matches name.
func (c *OpenAlex) SearchAuthors(ctx context.Context, name string, limit int) []models.AuthorCandidate {
	items := cachedList(ctx, c.cache, c.logger, AuthorsKey(c.Source(), name, limit), func(ctx context.Context) ([]json.RawMessage, error) {
		params := url.Values{}
		params.Set("filter", "display_name.search:"+name)
		params.Set("per-page", strconv.Itoa(limit))
		return c.list(ctx, "/authors", params)
	})

	candidates := make([]models.AuthorCandidate, 0, len(items))
	for _, raw := range items {
		var a openAlexAuthor
		if err := json.Unmarshal(raw, &a); err != nil {
			c.logger.Debug("skipping undecodable author", "error", err)
			continue
		}
		affiliations := displayNames(a.XConcepts)
		if len(affiliations) == 0 {
			affiliations = displayNames(a.LastKnownInstitutions)
		}
		candidates = append(candidates, models.AuthorCandidate{
			Source:       models.SourceOpenAlex,
			ID:           a.ID,
			Name:         a.DisplayName,
			Affiliations: affiliations,
			Raw:          raw,
		})
	}
	return candidates
}

// GetAuthorWorks returns the author's works, most cited first.
// authorID may be the full https://openalex.org/A123 URL or the bare id.
func (c *OpenAlex) GetAuthorWorks(ctx context.Context, authorID string, limit int) []models.Work {
	items := cachedList(ctx, c.cache, c.logger, WorksKey(c.Source(), authorID, limit), func(ctx context.Context) ([]json.RawMessage, error) {
		params := url.Values{}
		params.Set("filter", "author.id:"+shortOpenAlexID(authorID))
		params.Set("per-page", strconv.Itoa(limit))
		params.Set("sort", "cited_by_count:desc")
		return c.list(ctx, "/works", params)
	})

	works := make([]models.Work, 0, len(items))
	for _, raw := range items {
		var w openAlexWork
		if err := json.Unmarshal(raw, &w); err != nil {
			c.logger.Debug("skipping undecodable work", "error", err)
			continue
		}
		work := models.Work{
			Title:  w.Title,
			Topics: displayNames(w.Concepts),
		}
		if work.Title == "" {
			work.Title = w.DisplayName
		}
		if len(work.Topics) == 0 {
			work.Topics = displayNames(w.Topics)
		}
		if w.PublicationYear != nil {
			work.Date = strconv.Itoa(*w.PublicationYear)
		} else {
			work.Date = w.PublicationDate
		}
		works = append(works, work)
	}
	return works
}

func shortOpenAlexID(id string) string {
	id = strings.TrimRight(strings.TrimSpace(id), "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
