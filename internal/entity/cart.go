package entity

type CartLine struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	PurchasePrice float64 `json:"purchase_price"`
	Quantity      int     `json:"quantity"`
	Total         float64 `json:"total"`
}
