package dictionary

import (
	"context"
	"sync"

	"codeberg.org/snonux/lexipick/internal/picker"
)

// Record is the enrichment state of one normalized word. A record is
// created loading and transitions exactly once to a populated or an
// error state; it is never refetched for the lifetime of the session.
type Record struct {
	Word        string
	Phonetic    string
	Definitions []string
	Loading     bool
	Err         string
}

// Lookuper issues a single word lookup. *Client implements it; tests
// substitute fakes.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (*Entry, error)
}

// Cache deduplicates dictionary lookups by normalized word. Callers
// fire EnsureFetched freely from UI callbacks; at most one lookup per
// key is ever issued. Lookup goroutines publish results back through
// the cache mutex, and readers always get value copies, so a render
// pass never observes a half-written record.
type Cache struct {
	mu         sync.Mutex
	records    map[string]Record
	generation int
	lookup     Lookuper
	onUpdate   func(word string)
}

// NewCache creates an empty cache backed by the given lookuper.
func NewCache(lookup Lookuper) *Cache {
	return &Cache{
		records: make(map[string]Record),
		lookup:  lookup,
	}
}

// SetOnUpdate registers a callback invoked (from the lookup
// goroutine) after a record reaches its terminal state. GUI callers
// wrap the body in fyne.Do.
func (c *Cache) SetOnUpdate(fn func(word string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// EnsureFetched requests enrichment for a word. The word is
// normalized first; if any record already exists for the key —
// loading, populated or failed — nothing happens. Otherwise a loading
// record is stored synchronously and a single lookup starts in the
// background.
func (c *Cache) EnsureFetched(word string) {
	key := picker.Normalize(word)
	if key == "" {
		return
	}

	c.mu.Lock()
	if _, exists := c.records[key]; exists {
		c.mu.Unlock()
		return
	}
	c.records[key] = Record{Word: key, Loading: true}
	generation := c.generation
	c.mu.Unlock()

	go c.fetch(key, generation)
}

// fetch runs the lookup and stores the terminal record, unless the
// cache was reset while the request was in flight, in which case the
// stale result is dropped.
func (c *Cache) fetch(key string, generation int) {
	entry, err := c.lookup.Lookup(context.Background(), key)

	record := Record{Word: key}
	if err != nil {
		record.Err = err.Error()
	} else {
		record.Phonetic = entry.Phonetic
		record.Definitions = entry.Definitions
	}

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		return
	}
	c.records[key] = record
	onUpdate := c.onUpdate
	c.mu.Unlock()

	if onUpdate != nil {
		onUpdate(key)
	}
}

// Get returns a copy of the record for a word, normalized first.
func (c *Cache) Get(word string) (Record, bool) {
	key := picker.Normalize(word)
	c.mu.Lock()
	defer c.mu.Unlock()
	record, ok := c.records[key]
	return record, ok
}

// Snapshot returns a copy of all records keyed by normalized word.
func (c *Cache) Snapshot() map[string]Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Record, len(c.records))
	for key, record := range c.records {
		out[key] = record
	}
	return out
}

// Len returns the number of records, loading ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Reset drops every record and invalidates all in-flight lookups.
// Their results will be discarded when they land.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.records = make(map[string]Record)
}
