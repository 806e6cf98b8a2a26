package planning

import (
	"math"
	"reflect"
	"testing"
)

func sku(id string, kind SKUKind, process string) SKU {
	return SKU{ID: id, Code: id, Name: id, Kind: kind, Process: process, Active: true}
}

func edge(parent, component string, qty float64) Edge {
	return Edge{ParentID: parent, ComponentID: component, QtyPerUnit: qty}
}

func mustSnapshot(t *testing.T, records ...StockRecord) *Snapshot {
	t.Helper()
	snap, err := NewSnapshot(records)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// The canonical scenario: PACK-A forecast 100 with 20 completed on hand and
// 10 in Gallatin needs 70 built. Its 1x assembly ASM-B has 50 on hand, so
// only the 20-unit shortfall pulls raw material: 2x RAW-C per assembly
// means 40 units of raw demand, not 140.
func TestExplodeShortfallPropagation(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, "PACKING"),
			sku("ASM-B", KindAssembly, "ASSEMBLY"),
			sku("RAW-C", KindRaw, "WELD"),
		},
		[]Edge{
			edge("PACK-A", "ASM-B", 1),
			edge("ASM-B", "RAW-C", 2),
		},
	)
	snap := mustSnapshot(t,
		StockRecord{SKUID: "PACK-A", State: StateCompleted, Quantity: 20},
		StockRecord{SKUID: "ASM-B", State: StateInStock, Quantity: 50},
		StockRecord{SKUID: "RAW-C", State: StateInStock, Quantity: 30},
	)
	rates := ProcessRates{"PACKING": 10, "ASSEMBLY": 60, "WELD": 30}

	result, err := Explode(cat, snap, []ForecastLine{
		{SKUID: "PACK-A", Forecasted: 100, CurrentInGallatin: 10},
	}, rates)
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}

	if len(result.Products) != 1 {
		t.Fatalf("expected 1 product plan, got %d", len(result.Products))
	}
	plan := result.Products[0]
	if plan.NeedToBuild != 70 {
		t.Errorf("needToBuild = %v, want 70", plan.NeedToBuild)
	}

	raw, ok := result.RawTotals["RAW-C"]
	if !ok {
		t.Fatal("no raw total for RAW-C")
	}
	if raw.Needed != 40 {
		t.Errorf("RAW-C needed = %v, want 40 (2 x 20 shortfall, not 2 x 70)", raw.Needed)
	}
	if raw.Available != 30 {
		t.Errorf("RAW-C available = %v, want 30", raw.Available)
	}
	if !reflect.DeepEqual(raw.Consumers, []string{"PACK-A"}) {
		t.Errorf("RAW-C consumers = %v, want [PACK-A]", raw.Consumers)
	}

	// Final assembly labor: 70 units of PACKING.
	if load := result.ProcessTotals["PACKING"]; load == nil || load.Units != 70 || load.Seconds != 700 {
		t.Errorf("PACKING load = %+v, want 70 units / 700s", load)
	}
	// The assembly's process runs for every unit consumed, stocked or not.
	if load := result.ProcessTotals["ASSEMBLY"]; load == nil || load.Units != 70 || load.Seconds != 4200 {
		t.Errorf("ASSEMBLY load = %+v, want 70 units / 4200s", load)
	}
	// Raw conversion labor only covers the shortfall being built.
	if load := result.ProcessTotals["WELD"]; load == nil || load.Units != 40 || load.Seconds != 1200 {
		t.Errorf("WELD load = %+v, want 40 units / 1200s", load)
	}

	wantHours := (700.0 + 4200.0 + 1200.0) / 3600.0
	if !almostEqual(plan.BuildHours, wantHours) {
		t.Errorf("build hours = %v, want %v", plan.BuildHours, wantHours)
	}
	if !almostEqual(result.RequiredHours(), wantHours) {
		t.Errorf("required hours = %v, want %v", result.RequiredHours(), wantHours)
	}
}

func TestExplodeNeedToBuildNeverNegative(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, ""),
			sku("RAW-C", KindRaw, ""),
		},
		[]Edge{edge("PACK-A", "RAW-C", 3)},
	)
	snap := mustSnapshot(t,
		StockRecord{SKUID: "PACK-A", State: StateCompleted, Quantity: 80},
	)

	result, err := Explode(cat, snap, []ForecastLine{
		{SKUID: "PACK-A", Forecasted: 50, CurrentInGallatin: 40},
	}, ProcessRates{})
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}

	plan := result.Products[0]
	if plan.NeedToBuild != 0 {
		t.Errorf("needToBuild = %v, want 0", plan.NeedToBuild)
	}
	// Structure is still reported for display, with zero demand.
	if len(plan.RawMaterials) != 1 || plan.RawMaterials[0].Needed != 0 {
		t.Errorf("raw materials = %+v, want one zero-need entry", plan.RawMaterials)
	}
	if len(result.RawTotals) != 0 {
		t.Errorf("raw totals = %+v, want empty", result.RawTotals)
	}
	if len(result.ProcessTotals) != 0 {
		t.Errorf("process totals = %+v, want empty", result.ProcessTotals)
	}
}

func TestExplodeStockedAssemblyGeneratesNoRawDemand(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, ""),
			sku("ASM-B", KindAssembly, "TIP"),
			sku("RAW-C", KindRaw, ""),
		},
		[]Edge{
			edge("PACK-A", "ASM-B", 2),
			edge("ASM-B", "RAW-C", 5),
		},
	)
	snap := mustSnapshot(t,
		StockRecord{SKUID: "ASM-B", State: StateInStock, Quantity: 200},
	)

	result, err := Explode(cat, snap, []ForecastLine{
		{SKUID: "PACK-A", Forecasted: 10},
	}, ProcessRates{"TIP": 12})
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}

	if len(result.RawTotals) != 0 {
		t.Errorf("raw totals = %+v, want none: assembly stock covers demand", result.RawTotals)
	}
	// Labor on the assembly's own process still covers all 20 consumed units.
	if load := result.ProcessTotals["TIP"]; load == nil || load.Units != 20 || load.Seconds != 240 {
		t.Errorf("TIP load = %+v, want 20 units / 240s", load)
	}
}

func TestExplodeAggregatesAcrossProducts(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, ""),
			sku("PACK-B", KindCompleted, ""),
			sku("RAW-C", KindRaw, ""),
		},
		[]Edge{
			edge("PACK-A", "RAW-C", 2),
			edge("PACK-B", "RAW-C", 3),
		},
	)
	snap := mustSnapshot(t,
		StockRecord{SKUID: "RAW-C", State: StateInStock, Quantity: 5},
	)

	result, err := Explode(cat, snap, []ForecastLine{
		{SKUID: "PACK-B", Forecasted: 10},
		{SKUID: "PACK-A", Forecasted: 10},
	}, ProcessRates{})
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}

	raw := result.RawTotals["RAW-C"]
	if raw == nil || raw.Needed != 50 {
		t.Fatalf("RAW-C total = %+v, want needed 50", raw)
	}
	if !reflect.DeepEqual(raw.Consumers, []string{"PACK-A", "PACK-B"}) {
		t.Errorf("consumers = %v, want sorted [PACK-A PACK-B]", raw.Consumers)
	}
	// Products come back ordered by code no matter the input order.
	if result.Products[0].Code != "PACK-A" || result.Products[1].Code != "PACK-B" {
		t.Errorf("product order = %s, %s", result.Products[0].Code, result.Products[1].Code)
	}
}

func TestExplodeRejectsNegativeInput(t *testing.T) {
	cat := NewCatalog([]SKU{sku("PACK-A", KindCompleted, "")}, nil)
	snap := mustSnapshot(t)

	if _, err := Explode(cat, snap, []ForecastLine{{SKUID: "PACK-A", Forecasted: -1}}, nil); err == nil {
		t.Error("negative forecast accepted")
	}
	if _, err := Explode(cat, snap, []ForecastLine{{SKUID: "PACK-A", CurrentInGallatin: -1}}, nil); err == nil {
		t.Error("negative gallatin quantity accepted")
	}
	if _, err := NewSnapshot([]StockRecord{{SKUID: "PACK-A", Quantity: -2}}); err == nil {
		t.Error("negative inventory accepted")
	}
}

func TestExplodeToleratesMissingReferences(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, "GHOST-PROCESS"),
			sku("RAW-C", KindRaw, ""),
		},
		[]Edge{
			edge("PACK-A", "GONE-SKU", 4), // component no longer in catalog
			edge("PACK-A", "RAW-C", 1),
		},
	)
	snap := mustSnapshot(t)

	result, err := Explode(cat, snap, []ForecastLine{
		{SKUID: "PACK-A", Forecasted: 10},
		{SKUID: "NO-SUCH-SKU", Forecasted: 99},
	}, ProcessRates{}) // GHOST-PROCESS not configured
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}

	if len(result.Products) != 1 {
		t.Fatalf("products = %d, want 1 (unknown forecast line dropped)", len(result.Products))
	}
	if _, ok := result.RawTotals["GONE-SKU"]; ok {
		t.Error("dangling edge produced a raw total")
	}
	if result.RawTotals["RAW-C"].Needed != 10 {
		t.Errorf("RAW-C needed = %v, want 10", result.RawTotals["RAW-C"].Needed)
	}
	if len(result.ProcessTotals) != 0 {
		t.Errorf("process totals = %+v, want empty for unconfigured process", result.ProcessTotals)
	}
}

func TestExplodeDepthCap(t *testing.T) {
	// PACK-A -> ASM-1 -> ASM-2 -> RAW-D. At the default depth the engine
	// reports ASM-2 but does not explode it into RAW-D.
	skus := []SKU{
		sku("PACK-A", KindCompleted, ""),
		sku("ASM-1", KindAssembly, ""),
		sku("ASM-2", KindAssembly, ""),
		sku("RAW-D", KindRaw, ""),
	}
	edges := []Edge{
		edge("PACK-A", "ASM-1", 1),
		edge("ASM-1", "ASM-2", 1),
		edge("ASM-2", "RAW-D", 1),
	}
	cat := NewCatalog(skus, edges)
	snap := mustSnapshot(t)
	lines := []ForecastLine{{SKUID: "PACK-A", Forecasted: 5}}

	result, err := Explode(cat, snap, lines, ProcessRates{})
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	plan := result.Products[0]
	if len(plan.Assemblies) != 2 {
		t.Fatalf("assemblies = %+v, want ASM-1 and ASM-2 reported", plan.Assemblies)
	}
	if _, ok := result.RawTotals["RAW-D"]; ok {
		t.Error("RAW-D exploded past the depth cap")
	}

	deeper, err := ExplodeDepth(cat, snap, lines, ProcessRates{}, 3)
	if err != nil {
		t.Fatalf("ExplodeDepth: %v", err)
	}
	if raw := deeper.RawTotals["RAW-D"]; raw == nil || raw.Needed != 5 {
		t.Errorf("RAW-D at depth 3 = %+v, want needed 5", raw)
	}
}

func TestExplodeIsIdempotent(t *testing.T) {
	cat := NewCatalog(
		[]SKU{
			sku("PACK-A", KindCompleted, "PACKING"),
			sku("ASM-B", KindAssembly, "ASSEMBLY"),
			sku("RAW-C", KindRaw, "WELD"),
		},
		[]Edge{
			edge("PACK-A", "ASM-B", 1),
			edge("ASM-B", "RAW-C", 2),
		},
	)
	snap := mustSnapshot(t,
		StockRecord{SKUID: "PACK-A", State: StateCompleted, Quantity: 3},
		StockRecord{SKUID: "ASM-B", State: StateInStock, Quantity: 4},
	)
	lines := []ForecastLine{{SKUID: "PACK-A", Forecasted: 25, CurrentInGallatin: 2}}
	rates := ProcessRates{"PACKING": 10, "ASSEMBLY": 60, "WELD": 30}

	first, err := Explode(cat, snap, lines, rates)
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	second, err := Explode(cat, snap, lines, rates)
	if err != nil {
		t.Fatalf("Explode: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same snapshot differ")
	}
}
