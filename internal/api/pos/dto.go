package pos

import "PharmaPOS/internal/entity"

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type SetQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

type QuantitySelectionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// DiscountRequest targets one line by product id, or the whole cart
// when the id is empty.
type DiscountRequest struct {
	ProductID string  `json:"product_id"`
	Type      string  `json:"type" validate:"required,oneof=percent amount"`
	Value     float64 `json:"value" validate:"min=0"`
}

type AdjustPriceRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Price     float64 `json:"price" validate:"gt=0"`
}

type CheckoutRequest struct {
	CustomerID    string  `json:"customer_id"`
	CustomerEmail string  `json:"customer_email" validate:"omitempty,email"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash transfer"`
	AmountPaid    float64 `json:"amount_paid" validate:"min=0"`
	Bank          string  `json:"bank"`
	PrintReceipt  bool    `json:"print_receipt"`
	EmailReceipt  bool    `json:"email_receipt"`
}

type CartResponse struct {
	Lines    []entity.CartLine `json:"lines"`
	Subtotal float64           `json:"subtotal"`
	Discount float64           `json:"discount"`
	Total    float64           `json:"total"`
}

type TerminalResponse struct {
	TerminalID   string           `json:"terminal_id"`
	Results      []entity.Product `json:"results"`
	Quantities   map[string]int   `json:"quantities"`
	CheckoutOpen bool             `json:"checkout_open"`
	Cart         CartResponse     `json:"cart"`
}

type CheckoutResponse struct {
	SaleID        string  `json:"sale_id"`
	Status        string  `json:"status"`
	Total         float64 `json:"total"`
	AmountPaid    float64 `json:"amount_paid"`
	Change        float64 `json:"change"`
	PaymentMethod string  `json:"payment_method"`
	VANumber      string  `json:"va_number,omitempty"`
}

type PaymentCallbackRequest struct {
	PartnerServiceId   string         `json:"partnerServiceId"`
	CustomerNo         string         `json:"customerNo"`
	VirtualAccountNo   string         `json:"virtualAccountNo"`
	VirtualAccountName string         `json:"virtualAccountName"`
	TrxId              string         `json:"trxId"`
	PaymentRequestId   string         `json:"paymentRequestId"`
	PaidAmount         Amount         `json:"paidAmount"`
	TotalAmount        Amount         `json:"totalAmount"`
	TrxDateTime        string         `json:"trxDateTime"`
	AdditionalInfo     AdditionalInfo `json:"additionalInfo"`
}

type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type AdditionalInfo struct {
	Channel string `json:"channel"`
}

type PaymentStatusResponse struct {
	SaleID string `json:"sale_id"`
	Status string `json:"status"`
	Paid   bool   `json:"paid"`
}

type SaleResponse struct {
	ID            string            `json:"id"`
	TerminalID    string            `json:"terminal_id"`
	CustomerID    string            `json:"customer_id,omitempty"`
	Subtotal      float64           `json:"subtotal"`
	Discount      float64           `json:"discount"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    float64           `json:"amount_paid"`
	Change        float64           `json:"change"`
	VANumber      string            `json:"va_number,omitempty"`
	Status        string            `json:"status"`
	Items         []entity.SaleItem `json:"items"`
	CreatedAt     string            `json:"created_at"`
}
