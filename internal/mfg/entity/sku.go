package entity

import "time"

// SKU kinds
const (
	SKUKindRaw       = "raw"
	SKUKindAssembly  = "assembly"
	SKUKindCompleted = "completed"
)

// SKU is a catalog stock-keeping unit: a raw material, a subassembly or a
// completed (sellable) product.
type SKU struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Kind      string    `json:"kind" gorm:"size:16;not null;index"` // raw/assembly/completed
	Process   string    `json:"process,omitempty" gorm:"size:64"`   // labor process name, may be empty
	Active    bool      `json:"active" gorm:"not null;default:true"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Components []BOMEdge `json:"components,omitempty" gorm:"foreignKey:ParentSKUID"`
}

func (SKU) TableName() string {
	return "skus"
}

// BOMEdge links a parent SKU to one of its direct components with the
// quantity consumed per parent unit.
type BOMEdge struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	ParentSKUID    string    `json:"parent_sku_id" gorm:"column:parent_sku_id;size:32;not null;index"`
	ComponentSKUID string    `json:"component_sku_id" gorm:"column:component_sku_id;size:32;not null;index"`
	QtyPerUnit     float64   `json:"qty_per_unit" gorm:"type:numeric(15,4);not null;default:1"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Parent    *SKU `json:"parent,omitempty" gorm:"foreignKey:ParentSKUID"`
	Component *SKU `json:"component,omitempty" gorm:"foreignKey:ComponentSKUID"`
}

func (BOMEdge) TableName() string {
	return "bom_edges"
}
