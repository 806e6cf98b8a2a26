package entity

import "time"

// ProcessConfig prices one labor process in seconds per unit produced.
type ProcessConfig struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	Name           string    `json:"name" gorm:"size:64;not null;uniqueIndex"`
	SecondsPerUnit float64   `json:"seconds_per_unit" gorm:"type:numeric(10,2);not null;default:0"`
	Active         bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ProcessConfig) TableName() string {
	return "process_configs"
}
