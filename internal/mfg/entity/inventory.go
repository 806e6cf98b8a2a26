package entity

import "time"

// Inventory states
const (
	InventoryStateCompleted  = "completed"
	InventoryStateInStock    = "in_stock"
	InventoryStateInProgress = "in_progress"
)

// Inventory transaction types
const (
	TxTypeIn     = "in"
	TxTypeOut    = "out"
	TxTypeAdjust = "adjust"
)

// InventoryRecord is the on-hand quantity of one SKU in one state. A SKU
// may have several records, one per state.
type InventoryRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	SKUID     string    `json:"sku_id" gorm:"column:sku_id;size:32;not null;index:idx_inventory_sku_state,unique"`
	State     string    `json:"state" gorm:"size:16;not null;index:idx_inventory_sku_state,unique"`
	Quantity  float64   `json:"quantity" gorm:"type:numeric(15,4);not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SKU *SKU `json:"sku,omitempty" gorm:"foreignKey:SKUID"`
}

func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// InventoryTransaction is the audit trail behind every stock movement.
type InventoryTransaction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	SKUID     string    `json:"sku_id" gorm:"column:sku_id;size:32;not null;index"`
	State     string    `json:"state" gorm:"size:16;not null"`
	Type      string    `json:"type" gorm:"size:16;not null"` // in/out/adjust
	Quantity  float64   `json:"quantity" gorm:"type:numeric(15,4);not null"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}
