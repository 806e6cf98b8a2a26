package planning

import "fmt"

// Inventory states carried on stock records. Finished goods sit in
// StateCompleted; anything else (raw stock, work in progress) counts
// toward general availability but not toward finished-goods on-hand.
const (
	StateCompleted  = "completed"
	StateInStock    = "in_stock"
	StateInProgress = "in_progress"
)

// StockRecord is one per-SKU, per-state on-hand quantity.
type StockRecord struct {
	SKUID    string
	State    string
	Quantity float64
}

// Snapshot is a read-only view of on-hand inventory at fetch time. The
// explosion engine reads it; nothing writes it.
type Snapshot struct {
	records map[string][]StockRecord
}

// NewSnapshot indexes stock records by SKU. A negative quantity is invalid
// input and rejects the whole snapshot; the caller surfaces it as a
// validation error rather than letting the engine clamp it.
func NewSnapshot(records []StockRecord) (*Snapshot, error) {
	s := &Snapshot{records: make(map[string][]StockRecord)}
	for _, r := range records {
		if r.Quantity < 0 {
			return nil, fmt.Errorf("inventory for sku %s in state %q is negative (%v)", r.SKUID, r.State, r.Quantity)
		}
		s.records[r.SKUID] = append(s.records[r.SKUID], r)
	}
	return s, nil
}

// OnHand sums positive quantities for a SKU across all states.
func (s *Snapshot) OnHand(skuID string) float64 {
	var total float64
	for _, r := range s.records[skuID] {
		if r.Quantity > 0 {
			total += r.Quantity
		}
	}
	return total
}

// OnHandInState sums positive quantities for a SKU in one state.
func (s *Snapshot) OnHandInState(skuID, state string) float64 {
	var total float64
	for _, r := range s.records[skuID] {
		if r.State == state && r.Quantity > 0 {
			total += r.Quantity
		}
	}
	return total
}
