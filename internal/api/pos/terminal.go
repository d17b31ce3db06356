package pos

import (
	"sync"

	"PharmaPOS/internal/entity"
)

// Terminal is the in-memory state of one till: the current search
// results, the quantity picked per result, the cart and whether the
// checkout dialog is open.
type Terminal struct {
	mu           sync.Mutex
	id           string
	cart         *Cart
	results      []entity.Product
	quantities   map[string]int
	checkoutOpen bool
}

func NewTerminal(id string) *Terminal {
	return &Terminal{
		id:         id,
		cart:       NewCart(),
		quantities: make(map[string]int),
	}
}

func (t *Terminal) ID() string {
	return t.id
}

// SetResults replaces the search results. Quantity selections are kept
// so that re-running a search does not reset what the operator picked.
func (t *Terminal) SetResults(products []entity.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = products
}

func (t *Terminal) Results() []entity.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]entity.Product, len(t.results))
	copy(out, t.results)
	return out
}

func (t *Terminal) SetQuantitySelection(productID string, quantity int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if quantity < 1 {
		quantity = 1
	}
	t.quantities[productID] = quantity
}

// QuantitySelection defaults to one when nothing was picked.
func (t *Terminal) QuantitySelection(productID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if qty, ok := t.quantities[productID]; ok && qty > 0 {
		return qty
	}
	return 1
}

func (t *Terminal) QuantitySelections() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.quantities))
	for id, qty := range t.quantities {
		out[id] = qty
	}
	return out
}

func (t *Terminal) AddToCart(product entity.Product, quantity int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cart.Add(product, quantity)
}

func (t *Terminal) RemoveFromCart(productID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.Remove(productID)
}

func (t *Terminal) SetCartQuantity(productID string, quantity int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.SetQuantity(productID, quantity)
}

// ApplyDiscount routes a discount to one line or the whole cart. An
// empty productID targets the whole cart.
func (t *Terminal) ApplyDiscount(productID, kind string, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case productID == "" && kind == DiscountAmount:
		return t.cart.ApplyCartAmountDiscount(value)
	case productID == "":
		return t.cart.ApplyCartDiscount(value)
	case kind == DiscountAmount:
		return t.cart.ApplyAmountDiscount(productID, value)
	default:
		return t.cart.ApplyDiscount(productID, value)
	}
}

func (t *Terminal) AdjustPrice(productID string, price float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.AdjustPrice(productID, price)
}

func (t *Terminal) ClearCart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cart.Clear()
	t.checkoutOpen = false
}

func (t *Terminal) CartLines() []entity.CartLine {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.Lines()
}

func (t *Terminal) CartTotals() (subtotal, discount, total float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cart.Subtotal(), t.cart.Discount(), t.cart.Total()
}

func (t *Terminal) OpenCheckout() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cart.Len() == 0 {
		return ErrCartEmpty
	}
	t.checkoutOpen = true
	return nil
}

func (t *Terminal) CloseCheckout() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkoutOpen = false
}

func (t *Terminal) CheckoutOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checkoutOpen
}
