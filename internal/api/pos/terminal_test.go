package pos

import (
	"errors"
	"testing"

	"PharmaPOS/internal/entity"
)

func TestTerminalQuantitySelections(t *testing.T) {
	term := NewTerminal("till-1")

	if got := term.QuantitySelection("p1"); got != 1 {
		t.Fatalf("default selection = %d, want 1", got)
	}

	term.SetQuantitySelection("p1", 4)
	term.SetQuantitySelection("p2", 0)
	if got := term.QuantitySelection("p1"); got != 4 {
		t.Fatalf("selection = %d, want 4", got)
	}
	if got := term.QuantitySelection("p2"); got != 1 {
		t.Fatalf("zero selection should coerce to 1, got %d", got)
	}

	// Re-running a search must not reset what the operator picked.
	term.SetResults([]entity.Product{{ID: "p1", Name: "Paracetamol 500mg"}})
	term.SetResults([]entity.Product{{ID: "p1"}, {ID: "p3"}})
	if got := term.QuantitySelection("p1"); got != 4 {
		t.Fatalf("selection lost after re-search, got %d", got)
	}
}

func TestTerminalCheckout(t *testing.T) {
	term := NewTerminal("till-1")

	if err := term.OpenCheckout(); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("checkout with empty cart = %v, want ErrCartEmpty", err)
	}

	term.AddToCart(entity.Product{ID: "p1", Name: "Paracetamol 500mg", Price: 10}, 1)
	if err := term.OpenCheckout(); err != nil {
		t.Fatalf("open checkout: %v", err)
	}
	if !term.CheckoutOpen() {
		t.Fatal("checkout not open")
	}

	// Clearing the cart closes the checkout too.
	term.ClearCart()
	if term.CheckoutOpen() {
		t.Fatal("checkout still open after clear")
	}
}

func TestTerminalCartTotals(t *testing.T) {
	term := NewTerminal("till-1")
	term.AddToCart(entity.Product{ID: "p1", Name: "Paracetamol 500mg", Price: 10}, 2)

	if err := term.ApplyDiscount("p1", DiscountPercent, 25); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	subtotal, discount, total := term.CartTotals()
	if subtotal != 20 || discount != 5 || total != 15 {
		t.Fatalf("totals = %v / %v / %v, want 20 / 5 / 15", subtotal, discount, total)
	}
}
