// Package planning implements the production-forecasting core: BOM
// explosion, shortage aggregation, labor capacity and backward usage
// traversal. Everything here is a pure computation over a point-in-time
// snapshot of catalog, inventory and forecast data; the package does no
// I/O and holds no shared state, so concurrent runs are safe.
package planning

import "sort"

// SKUKind classifies a catalog SKU.
type SKUKind string

const (
	KindRaw       SKUKind = "raw"
	KindAssembly  SKUKind = "assembly"
	KindCompleted SKUKind = "completed"
)

// SKU is the catalog view of a stock-keeping unit.
type SKU struct {
	ID      string
	Code    string
	Name    string
	Kind    SKUKind
	Process string // labor process consumed when producing this SKU, may be empty
	Active  bool
}

// Edge is a single parent→component BOM relation.
type Edge struct {
	ParentID    string
	ComponentID string
	QtyPerUnit  float64
}

// Catalog is an immutable, bidirectional view of the BOM graph. Build it
// once per request from catalog rows; it never mutates the underlying data.
type Catalog struct {
	skus       map[string]SKU
	components map[string][]Edge // parent id → direct component edges
	parents    map[string][]Edge // component id → direct parent edges
}

// NewCatalog indexes SKUs and edges in both directions. Self-referencing
// edges are dropped here so traversal never sees them.
func NewCatalog(skus []SKU, edges []Edge) *Catalog {
	c := &Catalog{
		skus:       make(map[string]SKU, len(skus)),
		components: make(map[string][]Edge),
		parents:    make(map[string][]Edge),
	}
	for _, s := range skus {
		c.skus[s.ID] = s
	}
	for _, e := range edges {
		if e.ParentID == e.ComponentID {
			continue
		}
		c.components[e.ParentID] = append(c.components[e.ParentID], e)
		c.parents[e.ComponentID] = append(c.parents[e.ComponentID], e)
	}
	return c
}

// SKU returns the catalog entry for id.
func (c *Catalog) SKU(id string) (SKU, bool) {
	s, ok := c.skus[id]
	return s, ok
}

// Components returns the direct component edges of a parent SKU.
func (c *Catalog) Components(parentID string) []Edge {
	return c.components[parentID]
}

// Parents returns the direct parent edges of a component SKU.
func (c *Catalog) Parents(componentID string) []Edge {
	return c.parents[componentID]
}

// Completed lists active completed SKUs sorted by code, the product set an
// explosion run iterates over.
func (c *Catalog) Completed() []SKU {
	var out []SKU
	for _, s := range c.skus {
		if s.Active && s.Kind == KindCompleted {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
