package memory

import (
	"sort"
	"sync"

	"datacraft/domain/diagnostic"
	"datacraft/ports"
)

// SummaryCache holds dashboard summaries keyed by dataset file name.
type SummaryCache struct {
	mu      sync.RWMutex
	entries map[string]diagnostic.DashboardSummary
}

func NewSummaryCache() *SummaryCache {
	return &SummaryCache{entries: make(map[string]diagnostic.DashboardSummary)}
}

func (c *SummaryCache) Put(name string, summary diagnostic.DashboardSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = summary
}

func (c *SummaryCache) Get(name string) (diagnostic.DashboardSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[name]
	return s, ok
}

func (c *SummaryCache) Delete(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		delete(c.entries, name)
	}
}

func (c *SummaryCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *SummaryCache) All() []diagnostic.DashboardSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]diagnostic.DashboardSummary, 0, len(c.entries))
	for _, s := range c.entries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

var _ ports.SummaryCache = (*SummaryCache)(nil)
