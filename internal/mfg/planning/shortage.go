package planning

import "sort"

// Shortage is one raw material whose aggregated demand exceeds on-hand
// stock, with the finished products that drove the demand.
type Shortage struct {
	SKUID     string
	Code      string
	Name      string
	Needed    float64
	Available float64
	Shortfall float64
	Consumers []string
}

// Shortages reduces the explosion's raw-material totals to the materials
// that are actually short. Available was read once when the snapshot was
// taken, so the shortfall is consistent across the whole run. Materials
// fully covered by stock never appear, even when individual products
// reported a need for them. Output is sorted by SKU code.
func Shortages(totals map[string]*RawRequirement) []Shortage {
	var out []Shortage
	for _, req := range totals {
		shortfall := req.Needed - req.Available
		if shortfall <= 0 {
			continue
		}
		consumers := make([]string, len(req.Consumers))
		copy(consumers, req.Consumers)
		out = append(out, Shortage{
			SKUID:     req.SKUID,
			Code:      req.Code,
			Name:      req.Name,
			Needed:    req.Needed,
			Available: req.Available,
			Shortfall: shortfall,
			Consumers: consumers,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
