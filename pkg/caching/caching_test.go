package caching

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func setupTestCache(t *testing.T) *DiskCache {
	t.Helper()
	c, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"), nil)
	if err != nil {
		t.Fatalf("NewDiskCache() error = %v", err)
	}
	return c
}

func TestDiskCache_SetGet(t *testing.T) {
	c := setupTestCache(t)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}

	c.Set("openalex:authors:Jane Doe:5", []byte(`[{"id":"A1"}]`))
	got, ok := c.Get("openalex:authors:Jane Doe:5")
	if !ok {
		t.Fatal("Get() after Set() reported a miss")
	}
	if string(got) != `[{"id":"A1"}]` {
		t.Errorf("Get() = %s, want %s", got, `[{"id":"A1"}]`)
	}
}

func TestDiskCache_FileNameIsKeyHash(t *testing.T) {
	c := setupTestCache(t)
	c.Set("enrich:Jane Doe:Acme:5", []byte(`{}`))

	want := filepath.Join(c.Path(), fmt.Sprintf("%x.json", sha256.Sum256([]byte("enrich:Jane Doe:Acme:5"))))
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected cache file %s: %v", want, err)
	}
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	c := setupTestCache(t)
	c.Set("k", []byte(`{"truncated":`))

	if _, ok := c.Get("k"); ok {
		t.Error("Get() on corrupt entry reported a hit")
	}
}

func TestDiskCache_SetFailureIsSwallowed(t *testing.T) {
	c := setupTestCache(t)
	if err := os.RemoveAll(c.Path()); err != nil {
		t.Fatal(err)
	}
	// Directory is gone: the write fails silently.
	c.Set("k", []byte(`1`))
	if _, ok := c.Get("k"); ok {
		t.Error("Get() after failed Set() reported a hit")
	}
}

func TestLoadSave(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}

	stores := map[string]Store{
		"memory": NewMemoryCache(),
		"disk":   setupTestCache(t),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			Save(s, "p", payload{Name: "Jane", Score: 90})

			var got payload
			if !Load(s, "p", &got) {
				t.Fatal("Load() reported a miss")
			}
			if got.Name != "Jane" || got.Score != 90 {
				t.Errorf("Load() = %+v", got)
			}

			s.Set("wrong-shape", []byte(`"just a string"`))
			if Load(s, "wrong-shape", &got) {
				t.Error("Load() of mismatched JSON reported a hit")
			}
		})
	}
}

func TestDiskCache_StatsAndClear(t *testing.T) {
	c := setupTestCache(t)
	c.Set("a", []byte(`[1]`))
	c.Set("b", []byte(`[1,2]`))

	st, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Entries != 2 || st.SizeBytes != 8 {
		t.Errorf("Stats() = %+v, want 2 entries / 8 bytes", st)
	}

	removed, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear() removed %d, want 2", removed)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear()")
	}
}

func TestDiskCache_ClearRefusedDuringRun(t *testing.T) {
	c := setupTestCache(t)
	c.Set("a", []byte(`1`))

	release, err := c.LockShared()
	if err != nil {
		t.Fatalf("LockShared() error = %v", err)
	}

	if _, err := c.Clear(); !errors.Is(err, ErrCacheBusy) {
		t.Errorf("Clear() during run error = %v, want ErrCacheBusy", err)
	}
	release()

	if _, err := c.Clear(); err != nil {
		t.Errorf("Clear() after release error = %v", err)
	}
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	c := NewMemoryCache()
	v := []byte(`"abc"`)
	c.Set("k", v)
	v[1] = 'z'

	got, _ := c.Get("k")
	if string(got) != `"abc"` {
		t.Errorf("Get() = %s, want stored copy", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
