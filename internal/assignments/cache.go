package assignments

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielpatrickdp/convo-terrain/internal/cluster"
)

// Cache holds precomputed assignments. It is empty until the first successful
// Load and is only emptied again by Clear. Reads are safe for concurrent use.
type Cache struct {
	Logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]cluster.Label
	loaded  bool
}

// NewCache returns an empty cache.
func NewCache(logger *slog.Logger) *Cache {
	return &Cache{Logger: logger}
}

// Load fills the cache from src. After a successful load further calls are
// no-ops until Clear. A failed load leaves the cache empty.
func (c *Cache) Load(ctx context.Context, src Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	table, err := src.Load(ctx)
	if err != nil {
		c.logger().Warn("assignment load failed, falling back to heuristics", slog.String("error", err.Error()))
		return fmt.Errorf("load assignments: %w", err)
	}
	c.entries = table.Resolve(c.logger())
	c.loaded = true
	c.logger().Info("assignments loaded", slog.Int("count", len(c.entries)))
	return nil
}

// Clear drops every entry and allows the next Load to run.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.loaded = false
}

// Lookup implements cluster.Lookup.
func (c *Cache) Lookup(id string) (cluster.Label, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.entries[id]
	return l, ok
}

// Len returns the number of cached assignments.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Loaded reports whether a load has succeeded since the last Clear.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
