package planning

import "testing"

func TestCatalogBidirectionalLookup(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, ""),
			sku("ASM-B", KindAssembly, ""),
			sku("RAW-C", KindRaw, ""),
		},
		[]Edge{
			edge("PACK-A", "ASM-B", 1),
			edge("ASM-B", "RAW-C", 2),
		},
	)

	comps := cat.Components("ASM-B")
	if len(comps) != 1 || comps[0].ComponentID != "RAW-C" || comps[0].QtyPerUnit != 2 {
		t.Errorf("Components(ASM-B) = %+v", comps)
	}
	parents := cat.Parents("ASM-B")
	if len(parents) != 1 || parents[0].ParentID != "PACK-A" {
		t.Errorf("Parents(ASM-B) = %+v", parents)
	}
	if got := cat.Components("RAW-C"); len(got) != 0 {
		t.Errorf("raw sku has components: %+v", got)
	}
}

func TestCatalogDropsSelfReference(t *testing.T) {
	cat := NewCatalog(
		[]SKU{sku("ASM-B", KindAssembly, "")},
		[]Edge{edge("ASM-B", "ASM-B", 1)},
	)
	if got := cat.Components("ASM-B"); len(got) != 0 {
		t.Errorf("self edge kept: %+v", got)
	}
	if got := cat.Parents("ASM-B"); len(got) != 0 {
		t.Errorf("self edge kept in parents: %+v", got)
	}
}

func TestCatalogCompletedFiltersAndSorts(t *testing.T) {
	inactive := sku("PACK-X", KindCompleted, "")
	inactive.Active = false
	cat := NewCatalog(
		[]SKU{
			sku("PACK-B", KindCompleted, ""),
			sku("PACK-A", KindCompleted, ""),
			sku("ASM-1", KindAssembly, ""),
			inactive,
		},
		nil,
	)
	completed := cat.Completed()
	if len(completed) != 2 || completed[0].Code != "PACK-A" || completed[1].Code != "PACK-B" {
		t.Errorf("Completed() = %+v", completed)
	}
}
