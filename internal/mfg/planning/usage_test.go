package planning

import (
	"fmt"
	"testing"
)

func TestUsedInReportsTransitiveParents(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("RAW-C", KindRaw, ""),
			sku("ASM-B", KindAssembly, ""),
			sku("PACK-A", KindCompleted, ""),
			sku("PACK-Z", KindCompleted, ""),
		},
		[]Edge{
			edge("ASM-B", "RAW-C", 2),
			edge("PACK-Z", "RAW-C", 5),
			edge("PACK-A", "ASM-B", 1),
		},
	)

	refs, truncated := cat.UsedIn("RAW-C")
	if truncated {
		t.Error("acyclic graph reported as truncated")
	}
	if len(refs) != 3 {
		t.Fatalf("refs = %+v, want 3", refs)
	}
	// Depth ascending, code ascending within depth.
	if refs[0].Code != "ASM-B" || refs[0].Depth != 0 || refs[0].QtyPerUnit != 2 {
		t.Errorf("refs[0] = %+v, want ASM-B depth 0 qty 2", refs[0])
	}
	if refs[1].Code != "PACK-Z" || refs[1].Depth != 0 || refs[1].QtyPerUnit != 5 {
		t.Errorf("refs[1] = %+v, want PACK-Z depth 0 qty 5", refs[1])
	}
	if refs[2].Code != "PACK-A" || refs[2].Depth != 1 || refs[2].QtyPerUnit != 1 {
		t.Errorf("refs[2] = %+v, want PACK-A depth 1 qty 1", refs[2])
	}
}

func TestUsedInSharedSubassemblyOnce(t *testing.T) {
	// RAW-C feeds both ASM-1 and ASM-2, which both feed PACK-A. The product
	// shows up once and the diamond is not mistaken for a cycle.
	cat := NewCatalog(
		[]SKU{
			sku("RAW-C", KindRaw, ""),
			sku("ASM-1", KindAssembly, ""),
			sku("ASM-2", KindAssembly, ""),
			sku("PACK-A", KindCompleted, ""),
		},
		[]Edge{
			edge("ASM-1", "RAW-C", 1),
			edge("ASM-2", "RAW-C", 1),
			edge("PACK-A", "ASM-1", 1),
			edge("PACK-A", "ASM-2", 1),
		},
	)

	refs, truncated := cat.UsedIn("RAW-C")
	if truncated {
		t.Error("diamond graph reported as truncated")
	}
	seen := map[string]int{}
	for _, r := range refs {
		seen[r.Code]++
	}
	if seen["PACK-A"] != 1 {
		t.Errorf("PACK-A reported %d times, want 1", seen["PACK-A"])
	}
	if len(refs) != 3 {
		t.Errorf("refs = %+v, want 3 entries", refs)
	}
}

func TestUsedInSurvivesCycle(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("ASM-A", KindAssembly, ""),
			sku("ASM-B", KindAssembly, ""),
		},
		[]Edge{
			edge("ASM-A", "ASM-B", 1),
			edge("ASM-B", "ASM-A", 1), // malformed catalog
		},
	)

	refs, truncated := cat.UsedIn("ASM-B")
	if !truncated {
		t.Error("cycle not flagged")
	}
	perDepth := map[int]map[string]bool{}
	for _, r := range refs {
		if perDepth[r.Depth] == nil {
			perDepth[r.Depth] = map[string]bool{}
		}
		if perDepth[r.Depth][r.Code] {
			t.Errorf("duplicate %s at depth %d", r.Code, r.Depth)
		}
		perDepth[r.Depth][r.Code] = true
	}
}

func TestUsedInDepthCap(t *testing.T) {
	// A chain deeper than the cap: sku0 <- sku1 <- ... <- sku14.
	var skus []SKU
	var edges []Edge
	for i := 0; i < 15; i++ {
		skus = append(skus, sku(fmt.Sprintf("SKU-%02d", i), KindAssembly, ""))
		if i > 0 {
			edges = append(edges, edge(fmt.Sprintf("SKU-%02d", i), fmt.Sprintf("SKU-%02d", i-1), 1))
		}
	}
	cat := NewCatalog(skus, edges)

	refs, truncated := cat.UsedIn("SKU-00")
	if !truncated {
		t.Error("deep chain not flagged as truncated")
	}
	if len(refs) != MaxUsageDepth {
		t.Errorf("refs = %d, want %d levels", len(refs), MaxUsageDepth)
	}
	for _, r := range refs {
		if r.Depth >= MaxUsageDepth {
			t.Errorf("ref %s beyond the cap at depth %d", r.Code, r.Depth)
		}
	}
}

func TestUsedInNoParents(t *testing.T) {
	cat := NewCatalog([]SKU{sku("PACK-A", KindCompleted, "")}, nil)
	refs, truncated := cat.UsedIn("PACK-A")
	if len(refs) != 0 || truncated {
		t.Errorf("got refs=%v truncated=%v for a top-level product", refs, truncated)
	}
}
