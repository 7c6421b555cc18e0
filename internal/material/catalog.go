package material

import (
	"sort"
)

// Catalog is an immutable set of material coefficients keyed by identifier.
//
// Thread-safety: a Catalog is never mutated after NewCatalog returns, so it
// may be shared across goroutines without synchronization. Accessors return
// copies.
type Catalog struct {
	entries map[string]Coefficients
	ids     []string // sorted, COLLATE BINARY order
}

// NewCatalog validates entries and builds a catalog from them.
// Returns a *CatalogError listing every problem if any entry is invalid or
// an identifier is repeated.
func NewCatalog(entries ...Coefficients) (*Catalog, error) {
	if errs := ValidateAll(entries); len(errs) > 0 {
		return nil, &CatalogError{Errors: errs}
	}

	c := &Catalog{
		entries: make(map[string]Coefficients, len(entries)),
		ids:     make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		c.entries[e.ID] = e
		c.ids = append(c.ids, e.ID)
	}
	sort.Strings(c.ids)

	return c, nil
}

// Merge builds a new catalog holding base plus extra. An extra entry whose
// identifier already exists in base replaces it. base is not modified.
func Merge(base *Catalog, extra ...Coefficients) (*Catalog, error) {
	replaced := make(map[string]Coefficients, len(extra))
	var added []Coefficients
	for _, e := range extra {
		if _, ok := base.entries[e.ID]; ok {
			if _, dup := replaced[e.ID]; !dup {
				replaced[e.ID] = e
				continue
			}
		}
		added = append(added, e)
	}

	merged := make([]Coefficients, 0, base.Len()+len(added))
	for _, id := range base.ids {
		if e, ok := replaced[id]; ok {
			merged = append(merged, e)
			continue
		}
		merged = append(merged, base.entries[id])
	}
	merged = append(merged, added...)

	return NewCatalog(merged...)
}

// Get returns the coefficients for id.
// Matching is exact: no prefix, case folding or normalization is applied.
func (c *Catalog) Get(id string) (Coefficients, error) {
	e, ok := c.entries[id]
	if !ok {
		return Coefficients{}, &UnknownMaterialError{ID: id}
	}
	return e, nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// IDs returns the identifiers in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// All returns a copy of the id → coefficients mapping.
func (c *Catalog) All() map[string]Coefficients {
	out := make(map[string]Coefficients, len(c.entries))
	for id, e := range c.entries {
		out[id] = e
	}
	return out
}

// Entries returns the coefficients ordered by identifier.
func (c *Catalog) Entries() []Coefficients {
	out := make([]Coefficients, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.entries[id])
	}
	return out
}
