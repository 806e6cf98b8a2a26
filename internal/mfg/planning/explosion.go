package planning

import (
	"fmt"
	"sort"
)

// DefaultExplosionDepth bounds the component descent at completed →
// assembly → raw. Deeper assemblies are reported but not exploded, which
// mirrors how the plant actually structures its BOMs; the cap is a
// parameter so deeper catalogs can opt in.
const DefaultExplosionDepth = 2

// ForecastLine is the planner's input for one completed SKU.
// CurrentInGallatin is finished stock sitting at the Gallatin warehouse,
// off the books of the plant's inventory records.
type ForecastLine struct {
	SKUID             string
	Forecasted        float64
	CurrentInGallatin float64
}

// ProcessRates maps an active process name to seconds of labor per unit.
type ProcessRates map[string]float64

// ProcessLoad accumulates labor demand against one process.
type ProcessLoad struct {
	Units   float64
	Seconds float64
}

// ComponentNeed is one exploded component line under a finished product.
type ComponentNeed struct {
	SKUID     string
	Code      string
	Name      string
	Kind      SKUKind
	Needed    float64
	Available float64
}

// RawRequirement aggregates demand for one raw material across every
// finished product that consumes it.
type RawRequirement struct {
	SKUID     string
	Code      string
	Name      string
	Needed    float64
	Available float64
	Consumers []string // finished-product codes, sorted, de-duplicated
}

// ProductPlan is the per-product explosion result.
type ProductPlan struct {
	SKUID        string
	Code         string
	Name         string
	Forecasted   float64
	OnHand       float64 // completed-state stock at the plant
	OffSite      float64 // CurrentInGallatin
	NeedToBuild  float64
	RawMaterials []ComponentNeed
	Assemblies   []ComponentNeed
	ProcessLoads map[string]*ProcessLoad
	BuildHours   float64
}

// Explosion is the full output of one forecast run.
type Explosion struct {
	Products      []ProductPlan
	RawTotals     map[string]*RawRequirement
	ProcessTotals map[string]*ProcessLoad
}

// RequiredHours converts the aggregated process seconds into labor hours.
func (e *Explosion) RequiredHours() float64 {
	var seconds float64
	for _, load := range e.ProcessTotals {
		seconds += load.Seconds
	}
	return seconds / 3600
}

// Explode runs the forward explosion at the default depth.
func Explode(cat *Catalog, snap *Snapshot, lines []ForecastLine, rates ProcessRates) (*Explosion, error) {
	return ExplodeDepth(cat, snap, lines, rates, DefaultExplosionDepth)
}

// ExplodeDepth converts forecasted demand into need-to-build quantities and
// walks each product's BOM down to maxDepth levels, accumulating raw
// material and labor-process requirements. It is a pure function of its
// inputs: the same snapshot always yields the same result.
//
// Negative forecast input is rejected up front. Missing or inactive SKUs
// and process names absent from rates contribute nothing; a single stale
// catalog reference must not block the whole run.
func ExplodeDepth(cat *Catalog, snap *Snapshot, lines []ForecastLine, rates ProcessRates, maxDepth int) (*Explosion, error) {
	for _, line := range lines {
		if line.Forecasted < 0 {
			return nil, fmt.Errorf("forecast for sku %s is negative (%v)", line.SKUID, line.Forecasted)
		}
		if line.CurrentInGallatin < 0 {
			return nil, fmt.Errorf("gallatin quantity for sku %s is negative (%v)", line.SKUID, line.CurrentInGallatin)
		}
	}
	if maxDepth < 1 {
		maxDepth = DefaultExplosionDepth
	}

	x := &exploder{
		cat:      cat,
		snap:     snap,
		rates:    rates,
		maxDepth: maxDepth,
		result: &Explosion{
			RawTotals:     make(map[string]*RawRequirement),
			ProcessTotals: make(map[string]*ProcessLoad),
		},
	}

	sorted := make([]ForecastLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return x.codeOf(sorted[i].SKUID) < x.codeOf(sorted[j].SKUID)
	})

	for _, line := range sorted {
		sku, ok := cat.SKU(line.SKUID)
		if !ok || !sku.Active || sku.Kind != KindCompleted {
			continue
		}
		x.explodeProduct(sku, line)
	}
	return x.result, nil
}

type exploder struct {
	cat      *Catalog
	snap     *Snapshot
	rates    ProcessRates
	maxDepth int
	result   *Explosion
}

func (x *exploder) codeOf(skuID string) string {
	if s, ok := x.cat.SKU(skuID); ok {
		return s.Code
	}
	return skuID
}

func (x *exploder) explodeProduct(sku SKU, line ForecastLine) {
	onHand := x.snap.OnHandInState(sku.ID, StateCompleted)
	need := line.Forecasted - (onHand + line.CurrentInGallatin)
	if need < 0 {
		need = 0
	}

	plan := &ProductPlan{
		SKUID:        sku.ID,
		Code:         sku.Code,
		Name:         sku.Name,
		Forecasted:   line.Forecasted,
		OnHand:       onHand,
		OffSite:      line.CurrentInGallatin,
		NeedToBuild:  need,
		ProcessLoads: make(map[string]*ProcessLoad),
	}

	// Final-assembly labor for the product itself.
	if need > 0 {
		x.accrue(plan, sku.Process, need)
	}

	for _, e := range x.cat.Components(sku.ID) {
		comp, ok := x.cat.SKU(e.ComponentID)
		if !ok || !comp.Active {
			continue
		}
		qtyNeeded := e.QtyPerUnit * need
		avail := x.snap.OnHand(comp.ID)
		cn := ComponentNeed{
			SKUID:     comp.ID,
			Code:      comp.Code,
			Name:      comp.Name,
			Kind:      comp.Kind,
			Needed:    qtyNeeded,
			Available: avail,
		}

		if comp.Kind == KindRaw {
			plan.RawMaterials = append(plan.RawMaterials, cn)
			if qtyNeeded > 0 {
				x.addRaw(comp, qtyNeeded, avail, plan.Code)
			}
			continue
		}

		// Assembly: the full quantity drives labor (every unit consumed is
		// handled by this process, stocked or freshly built), but only the
		// shortfall propagates demand into the assembly's own components.
		plan.Assemblies = append(plan.Assemblies, cn)
		if qtyNeeded > 0 {
			x.accrue(plan, comp.Process, qtyNeeded)
		}
		shortfall := qtyNeeded - avail
		if shortfall < 0 {
			shortfall = 0
		}
		x.explodeComponents(plan, comp, shortfall, 2)
	}

	for _, load := range plan.ProcessLoads {
		plan.BuildHours += load.Seconds / 3600
	}
	x.result.Products = append(x.result.Products, *plan)
}

// explodeComponents descends into an assembly's components with the build
// quantity that actually has to be made. Depth counts levels below the
// finished product; past maxDepth the structure is neither listed nor
// exploded.
func (x *exploder) explodeComponents(plan *ProductPlan, parent SKU, buildQty float64, depth int) {
	if depth > x.maxDepth {
		return
	}
	for _, e := range x.cat.Components(parent.ID) {
		comp, ok := x.cat.SKU(e.ComponentID)
		if !ok || !comp.Active {
			continue
		}
		subQty := e.QtyPerUnit * buildQty
		avail := x.snap.OnHand(comp.ID)
		cn := ComponentNeed{
			SKUID:     comp.ID,
			Code:      comp.Code,
			Name:      comp.Name,
			Kind:      comp.Kind,
			Needed:    subQty,
			Available: avail,
		}

		if comp.Kind == KindRaw {
			plan.RawMaterials = append(plan.RawMaterials, cn)
			if subQty > 0 {
				x.addRaw(comp, subQty, avail, plan.Code)
			}
		} else {
			plan.Assemblies = append(plan.Assemblies, cn)
		}

		// Labor to convert this component into its parent assembly,
		// counted only for the shortfall actually being built.
		if subQty > 0 {
			x.accrue(plan, comp.Process, subQty)
		}

		if comp.Kind != KindRaw {
			next := subQty - avail
			if next < 0 {
				next = 0
			}
			x.explodeComponents(plan, comp, next, depth+1)
		}
	}
}

// accrue books units against a process on both the per-product plan and
// the global totals. Unknown or inactive processes are skipped: the
// catalog may still reference a process that was since disabled.
func (x *exploder) accrue(plan *ProductPlan, process string, units float64) {
	if process == "" {
		return
	}
	rate, ok := x.rates[process]
	if !ok {
		return
	}
	seconds := units * rate

	if load, ok := plan.ProcessLoads[process]; ok {
		load.Units += units
		load.Seconds += seconds
	} else {
		plan.ProcessLoads[process] = &ProcessLoad{Units: units, Seconds: seconds}
	}

	if load, ok := x.result.ProcessTotals[process]; ok {
		load.Units += units
		load.Seconds += seconds
	} else {
		x.result.ProcessTotals[process] = &ProcessLoad{Units: units, Seconds: seconds}
	}
}

func (x *exploder) addRaw(comp SKU, qty, avail float64, consumerCode string) {
	req, ok := x.result.RawTotals[comp.ID]
	if !ok {
		req = &RawRequirement{
			SKUID:     comp.ID,
			Code:      comp.Code,
			Name:      comp.Name,
			Available: avail,
		}
		x.result.RawTotals[comp.ID] = req
	}
	req.Needed += qty
	for _, c := range req.Consumers {
		if c == consumerCode {
			return
		}
	}
	req.Consumers = append(req.Consumers, consumerCode)
	sort.Strings(req.Consumers)
}
