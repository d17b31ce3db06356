package entity

import (
	"time"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	PurchasePrice float64   `json:"purchase_price"`
	Stock         int       `json:"stock"`
	Unit          string    `json:"unit"`
	RequiresRx    bool      `json:"requires_rx"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
