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

// SemanticScholar queries the Semantic Scholar Graph API.
type SemanticScholar struct {
	baseURL string
	apiKey  string
	http    JSONGetter
	cache   caching.Store
	logger  *slog.Logger
}

var _ Catalog = (*SemanticScholar)(nil)

func NewSemanticScholar(cfg models.SemanticScholarConfig, http JSONGetter, cache caching.Store, logger *slog.Logger) *SemanticScholar {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = models.DefaultSemanticScholarBase
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SemanticScholar{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		http:    http,
		cache:   cache,
		logger:  logger.With("catalog", models.SourceSemanticScholar),
	}
}

func (c *SemanticScholar) Source() string { return models.SourceSemanticScholar }

type semanticScholarList struct {
	Data []json.RawMessage `json:"data"`
}

type semanticScholarAuthor struct {
	AuthorID     string   `json:"authorId"`
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Affiliations []string `json:"affiliations"`
}

type semanticScholarPaper struct {
	PaperID       string                `json:"paperId"`
	Title         string                `json:"title"`
	Year          *int                  `json:"year"`
	FieldsOfStudy []string              `json:"fieldsOfStudy"`
	Paper         *semanticScholarPaper `json:"paper"` // some responses wrap each item
}

func (c *SemanticScholar) list(ctx context.Context, path string, params url.Values) ([]json.RawMessage, error) {
	req := fetcher.Request{URL: c.baseURL + path, Params: params}
	if c.apiKey != "" {
		req.Headers = map[string]string{"x-api-key": c.apiKey}
	}
	body, err := c.http.GetJSON(ctx, req)
	if err != nil {
		return nil, err
	}
	var payload semanticScholarList
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode semantic scholar response: %w", err)
	}
	return payload.Data, nil
}

// SearchAuthors runs an author name query.
func (c *SemanticScholar) SearchAuthors(ctx context.Context, name string, limit int) []models.AuthorCandidate {
	items := cachedList(ctx, c.cache, c.logger, AuthorsKey(c.Source(), name, limit), func(ctx context.Context) ([]json.RawMessage, error) {
		params := url.Values{}
		params.Set("query", name)
		params.Set("limit", strconv.Itoa(limit))
		params.Set("fields", "name,affiliations")
		return c.list(ctx, "/author/search", params)
	})

	candidates := make([]models.AuthorCandidate, 0, len(items))
	for _, raw := range items {
		var a semanticScholarAuthor
		if err := json.Unmarshal(raw, &a); err != nil {
			c.logger.Debug("skipping undecodable author", "error", err)
			continue
		}
		id := a.AuthorID
		if id == "" {
			id = a.ID
		}
		candidates = append(candidates, models.AuthorCandidate{
			Source:       models.SourceSemanticScholar,
			ID:           id,
			Name:         a.Name,
			Affiliations: a.Affiliations,
			Raw:          raw,
		})
	}
	return candidates
}

// GetAuthorWorks lists the author's papers in catalog order.
func (c *SemanticScholar) GetAuthorWorks(ctx context.Context, authorID string, limit int) []models.Work {
	items := cachedList(ctx, c.cache, c.logger, WorksKey(c.Source(), authorID, limit), func(ctx context.Context) ([]json.RawMessage, error) {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(limit))
		params.Set("fields", "paperId,title,year,externalIds,fieldsOfStudy")
		return c.list(ctx, "/author/"+url.PathEscape(authorID)+"/papers", params)
	})

	works := make([]models.Work, 0, len(items))
	for _, raw := range items {
		var p semanticScholarPaper
		if err := json.Unmarshal(raw, &p); err != nil {
			c.logger.Debug("skipping undecodable paper", "error", err)
			continue
		}
		if p.Paper != nil {
			p = *p.Paper
		}
		work := models.Work{
			Title:  p.Title,
			Topics: p.FieldsOfStudy,
		}
		if p.Year != nil {
			work.Date = strconv.Itoa(*p.Year)
		}
		works = append(works, work)
	}
	return works
}
