// Package cache implements the cache maintenance commands.
package cache

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/caching"
)

func cacheDir(c *cli.Context) (string, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return "", err
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	return cfg.CacheDir, nil
}

func StatsAction(c *cli.Context) error {
	dir, err := cacheDir(c)
	if err != nil {
		return err
	}
	return Stats(c.App.Writer, dir)
}

func ClearAction(c *cli.Context) error {
	dir, err := cacheDir(c)
	if err != nil {
		return err
	}
	return Clear(c.App.Writer, dir)
}

// Stats prints the entry count and total size of the cache in dir.
func Stats(w io.Writer, dir string) error {
	store, err := caching.NewDiskCache(dir, nil)
	if err != nil {
		return err
	}
	st, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "cache: %s\nentries: %s\nsize: %s\n",
		store.Path(), humanize.Comma(int64(st.Entries)), humanize.Bytes(uint64(st.SizeBytes)))
	return nil
}

// Clear removes every cache entry in dir. It refuses while a run is using it.
func Clear(w io.Writer, dir string) error {
	store, err := caching.NewDiskCache(dir, nil)
	if err != nil {
		return err
	}
	removed, err := store.Clear()
	if errors.Is(err, caching.ErrCacheBusy) {
		return fmt.Errorf("cannot clear %s: %w", store.Path(), err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "removed %s entries from %s\n", humanize.Comma(int64(removed)), store.Path())
	return nil
}
