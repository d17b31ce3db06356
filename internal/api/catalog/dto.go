package catalog

type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Description   string  `json:"description" validate:"max=1000"`
	Category      string  `json:"category" validate:"max=100"`
	Price         float64 `json:"price" validate:"gt=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"min=0"`
	Stock         int     `json:"stock" validate:"min=0"`
	Unit          string  `json:"unit" validate:"max=50"`
	RequiresRx    bool    `json:"requires_rx"`
}

type UpdateProductRequest struct {
	ID            string  `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Description   string  `json:"description" validate:"max=1000"`
	Category      string  `json:"category" validate:"max=100"`
	Price         float64 `json:"price" validate:"gt=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"min=0"`
	Stock         int     `json:"stock" validate:"min=0"`
	Unit          string  `json:"unit" validate:"max=50"`
	RequiresRx    bool    `json:"requires_rx"`
}

type ProductResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category,omitempty"`
	Price         float64 `json:"price"`
	PurchasePrice float64 `json:"purchase_price"`
	Stock         int     `json:"stock"`
	Unit          string  `json:"unit,omitempty"`
	RequiresRx    bool    `json:"requires_rx"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type SearchResponse struct {
	Term     string            `json:"term"`
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
}
