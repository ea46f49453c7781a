// Package catalog searches bibliographic catalogs for authors and their works.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/caching"
	"github.com/dtnitsch/lead-enricher/pkg/fetcher"
)

// Catalog is the capability shared by every bibliographic source.
// Both methods degrade to an empty slice when the source is unavailable.
type Catalog interface {
	Source() string
	SearchAuthors(ctx context.Context, name string, limit int) []models.AuthorCandidate
	GetAuthorWorks(ctx context.Context, authorID string, limit int) []models.Work
}

// JSONGetter is the part of fetcher.Fetcher the clients need.
type JSONGetter interface {
	GetJSON(ctx context.Context, req fetcher.Request) (json.RawMessage, error)
}

// AuthorsKey is the cache key for an author search.
func AuthorsKey(source, name string, limit int) string {
	return fmt.Sprintf("%s:authors:%s:%d", source, name, limit)
}

// WorksKey is the cache key for an author's works.
func WorksKey(source, authorID string, limit int) string {
	return fmt.Sprintf("%s:works:%s:%d", source, authorID, limit)
}

// cachedList returns the raw result items stored under key, or fetches and
// caches them. A failed fetch yields an empty list and is not cached.
func cachedList(ctx context.Context, store caching.Store, logger *slog.Logger, key string, fetch func(context.Context) ([]json.RawMessage, error)) []json.RawMessage {
	var items []json.RawMessage
	if caching.Load(store, key, &items) {
		logger.Debug("catalog cache hit", "key", key)
		return nonNil(items)
	}

	items, err := fetch(ctx)
	if err != nil {
		logger.Warn("catalog lookup failed", "key", key, "error", err)
		return []json.RawMessage{}
	}
	items = nonNil(items)
	caching.Save(store, key, items)
	return items
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}

type displayNamed struct {
	DisplayName string `json:"display_name"`
}

func displayNames(in []displayNamed) []string {
	var out []string
	for _, d := range in {
		if d.DisplayName != "" {
			out = append(out, d.DisplayName)
		}
	}
	return out
}
