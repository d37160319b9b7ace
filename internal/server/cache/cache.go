// Package cache keeps finished reconciliation runs in memory so their CSV
// downloads can be fetched after the POST that produced them. It uses
// patrickmn/go-cache for TTL-based expiry; nothing survives a restart.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/bomtally/internal/report"
)

// Cache stores reports by run id.
type Cache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// New creates a new cache with the given TTL and cleanup interval.
// defaultTTL is how long a run stays downloadable.
// cleanupInterval is how often expired runs are removed from memory.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
		ttl:   defaultTTL,
	}
}

// Put stores a report under its run id with the default TTL.
func (c *Cache) Put(r *report.Report) {
	c.store.Set(r.RunID, r, gocache.DefaultExpiration)
}

// Get returns the report for id if it has not expired.
func (c *Cache) Get(id string) (*report.Report, bool) {
	v, ok := c.store.Get(id)
	if !ok {
		return nil, false
	}
	r, ok := v.(*report.Report)
	return r, ok
}

// Clear removes all runs.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of stored runs, expired ones included until
// the next cleanup.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats describes the run store for the readiness endpoint.
type Stats struct {
	Runs int    `json:"runs"`
	TTL  string `json:"ttl"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		Runs: c.store.ItemCount(),
		TTL:  c.ttl.String(),
	}
}
