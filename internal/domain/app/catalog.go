package app

import (
	"fmt"
	"sort"
)

// Catalog is the explicit table of installed apps, built once at startup
type Catalog struct {
	apps []Descriptor
	byID map[string]int
}

// NewCatalog registers every descriptor in order
func NewCatalog(apps ...Descriptor) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(apps))}
	for _, d := range apps {
		if err := c.Register(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds d, rejecting invalid descriptors and duplicate IDs
func (c *Catalog) Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", d.Name, err)
	}
	if _, exists := c.byID[d.ID]; exists {
		return fmt.Errorf("app %q already registered", d.ID)
	}
	c.byID[d.ID] = len(c.apps)
	c.apps = append(c.apps, d)
	return nil
}

// Lookup finds an app by ID
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return c.apps[i], true
}

// Len returns the number of registered apps
func (c *Catalog) Len() int {
	return len(c.apps)
}

// Sorted returns the apps ordered by display name, excluding the given IDs
func (c *Catalog) Sorted(exclude ...string) []Descriptor {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	out := make([]Descriptor, 0, len(c.apps))
	for _, d := range c.apps {
		if !skip[d.ID] {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayName() < out[j].DisplayName() })
	return out
}
