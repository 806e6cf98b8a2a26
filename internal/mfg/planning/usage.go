package planning

import "sort"

// MaxUsageDepth caps the backward traversal. The catalog keeps BOMs a
// handful of levels deep; hitting this cap means the graph is malformed.
const MaxUsageDepth = 10

// UsageRef is one transitive parent of a queried component. Depth 0 is a
// direct parent; QtyPerUnit is the multiplier on the edge through which
// the parent was reached.
type UsageRef struct {
	SKUID      string
	Code       string
	Name       string
	Kind       SKUKind
	Depth      int
	QtyPerUnit float64
}

// UsedIn walks parent edges from a component SKU and returns every
// transitive parent product, each reported once at the depth it was first
// reached. Parents shared between branches (a subassembly used in several
// products) are recorded only once. An unexpected cycle or a walk past
// MaxUsageDepth degrades to a truncated result instead of non-termination;
// truncated tells the caller to log a data-integrity warning rather than
// treat the output as exhaustive. Results are ordered by depth, then SKU
// code, regardless of traversal order.
func (c *Catalog) UsedIn(componentID string) (refs []UsageRef, truncated bool) {
	visited := map[string]bool{componentID: true}
	path := map[string]bool{componentID: true}
	refs, truncated = c.collectParents(componentID, 0, visited, path)
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Depth != refs[j].Depth {
			return refs[i].Depth < refs[j].Depth
		}
		return refs[i].Code < refs[j].Code
	})
	return refs, truncated
}

func (c *Catalog) collectParents(skuID string, depth int, visited, path map[string]bool) ([]UsageRef, bool) {
	var refs []UsageRef
	truncated := false
	for _, e := range c.parents[skuID] {
		if path[e.ParentID] {
			// Cycle: this parent is already on the current walk.
			truncated = true
			continue
		}
		if visited[e.ParentID] {
			// Reached earlier through a sibling branch.
			continue
		}
		if depth >= MaxUsageDepth {
			truncated = true
			continue
		}
		parent, ok := c.skus[e.ParentID]
		if !ok {
			continue
		}
		visited[e.ParentID] = true
		refs = append(refs, UsageRef{
			SKUID:      parent.ID,
			Code:       parent.Code,
			Name:       parent.Name,
			Kind:       parent.Kind,
			Depth:      depth,
			QtyPerUnit: e.QtyPerUnit,
		})

		path[e.ParentID] = true
		up, cut := c.collectParents(e.ParentID, depth+1, visited, path)
		delete(path, e.ParentID)

		refs = append(refs, up...)
		truncated = truncated || cut
	}
	return refs, truncated
}
