package entity

import "time"

// Forecast is the planner's demand row for one completed SKU.
// CurrentInGallatin is finished stock at the Gallatin warehouse, held off
// the plant's inventory records.
type Forecast struct {
	ID                string    `json:"id" gorm:"primaryKey;size:32"`
	SKUID             string    `json:"sku_id" gorm:"column:sku_id;size:32;not null;uniqueIndex"`
	ForecastedQty     float64   `json:"forecasted_qty" gorm:"type:numeric(15,4);not null;default:0"`
	CurrentInGallatin float64   `json:"current_in_gallatin" gorm:"type:numeric(15,4);not null;default:0"`
	UpdatedBy         string    `json:"updated_by" gorm:"size:32"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	SKU *SKU `json:"sku,omitempty" gorm:"foreignKey:SKUID"`
}

func (Forecast) TableName() string {
	return "forecasts"
}
