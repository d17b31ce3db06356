package entity

import (
	"time"
)

type Sale struct {
	ID            string     `json:"id"`
	TerminalID    string     `json:"terminal_id"`
	CustomerID    string     `json:"customer_id"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	AmountPaid    float64    `json:"amount_paid"`
	Change        float64    `json:"change"`
	VANumber      string     `json:"va_number"`
	Status        string     `json:"status"`
	Items         []SaleItem `json:"items"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type SaleItem struct {
	ID            string  `json:"id"`
	SaleID        string  `json:"sale_id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	PurchasePrice float64 `json:"purchase_price"`
	Total         float64 `json:"total"`
}

const (
	SaleStatusCompleted       = "completed"
	SaleStatusAwaitingPayment = "awaiting_payment"
	SaleStatusCancelled       = "cancelled"

	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
)
