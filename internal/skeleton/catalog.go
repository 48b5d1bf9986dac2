// Package skeleton provides the read-only catalog of named layout presets.
package skeleton

import "sync"

// Descriptor holds the per-preset limits a skeleton imposes on a spec.
type Descriptor struct {
	Name    string `yaml:"name"`
	MaxKPIs int    `yaml:"max_kpis"`
}

// Catalog maintains a mapping of skeleton IDs to their descriptors.
type Catalog struct {
	mu        sync.RWMutex
	skeletons map[string]*Descriptor
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		skeletons: make(map[string]*Descriptor),
	}
}

// Register adds or updates a skeleton in the catalog.
func (c *Catalog) Register(id string, d *Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skeletons[id] = d
}

// Get returns a skeleton descriptor by ID, or nil if not found.
func (c *Catalog) Get(id string) *Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.skeletons[id]; ok {
		// Return a copy to prevent mutation
		cpy := *d
		return &cpy
	}
	return nil
}

// IsValidID returns true if the skeleton is registered.
func (c *Catalog) IsValidID(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.skeletons[id]
	return ok
}

// IDs returns all registered skeleton IDs.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.skeletons))
	for id := range c.skeletons {
		ids = append(ids, id)
	}
	return ids
}
