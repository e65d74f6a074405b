package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

const dayKeyLayout = "2006-01-02"

// RistrettoIngestMarkCache remembers days that are known to be fully ingested.
// Purely an optimization over the storage existence probe; a miss only costs
// one extra query, so eviction is harmless.
type RistrettoIngestMarkCache struct {
	cache *ristretto.Cache
}

func NewIngestMarkCache(maxItems int64) (*RistrettoIngestMarkCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ingest mark cache failed: %w", err)
	}
	return &RistrettoIngestMarkCache{cache: c}, nil
}

func (c *RistrettoIngestMarkCache) Ingested(date time.Time) bool {
	_, ok := c.cache.Get(toKey(date))
	return ok
}

func (c *RistrettoIngestMarkCache) MarkIngested(date time.Time) {
	c.cache.Set(toKey(date), struct{}{}, 1)
	// Marks happen at most a few times a day; waiting keeps them visible
	// to the very next probe.
	c.cache.Wait()
}

func (c *RistrettoIngestMarkCache) Unmark(date time.Time) {
	c.cache.Del(toKey(date))
}

func (c *RistrettoIngestMarkCache) Close() { c.cache.Close() }

func toKey(date time.Time) string { return date.UTC().Format(dayKeyLayout) }
