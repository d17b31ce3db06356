package pos

import (
	"errors"
	"testing"

	"PharmaPOS/internal/entity"
)

func paracetamol() entity.Product {
	return entity.Product{ID: "p1", Name: "Paracetamol 500mg", Price: 10, PurchasePrice: 6}
}

func ibuprofen() entity.Product {
	return entity.Product{ID: "p2", Name: "Ibuprofen 400mg", Price: 15, PurchasePrice: 9}
}

func TestCartAddMergesByProduct(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 2)
	cart.Add(ibuprofen(), 1)
	cart.Add(paracetamol(), 3)

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("merged quantity = %d, want 5", lines[0].Quantity)
	}
	if lines[0].Total != 50 {
		t.Fatalf("merged line total = %v, want 50", lines[0].Total)
	}
}

func TestCartQuantityCoercion(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 0)
	cart.Add(ibuprofen(), -3)

	for _, line := range cart.Lines() {
		if line.Quantity != 1 {
			t.Fatalf("quantity %d for %s, want 1", line.Quantity, line.Name)
		}
	}
}

func TestCartSetQuantityRemovesAtZero(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 2)

	if err := cart.SetQuantity("p1", 4); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if cart.Lines()[0].Total != 40 {
		t.Fatalf("total after set quantity = %v, want 40", cart.Lines()[0].Total)
	}

	if err := cart.SetQuantity("p1", 0); err != nil {
		t.Fatalf("set quantity to zero: %v", err)
	}
	if cart.Len() != 0 {
		t.Fatalf("line not removed at quantity zero, len = %d", cart.Len())
	}

	if err := cart.SetQuantity("p1", 2); !errors.Is(err, ErrProductNotInCart) {
		t.Fatalf("set quantity on missing line = %v, want ErrProductNotInCart", err)
	}
}

func TestCartRemoveDecrementsOneUnit(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 3)

	if err := cart.Remove("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	line := cart.Lines()[0]
	if line.Quantity != 2 || line.Total != 20 {
		t.Fatalf("after remove: quantity %d total %v, want 2 / 20", line.Quantity, line.Total)
	}

	if err := cart.Remove("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := cart.Remove("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if cart.Len() != 0 {
		t.Fatalf("line not deleted at quantity zero, len = %d", cart.Len())
	}

	// Removing something that is not in the cart does nothing.
	if err := cart.Remove("p1"); err != nil {
		t.Fatalf("remove on empty cart = %v, want nil", err)
	}
}

func TestCartDiscountDoesNotCompound(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 3)

	if err := cart.ApplyDiscount("p1", 20); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	line := cart.Lines()[0]
	if line.Price != 8 || line.Total != 24 {
		t.Fatalf("after 20%%: price %v total %v, want 8 / 24", line.Price, line.Total)
	}

	// A second discount replaces the first, it never stacks on the
	// already discounted price.
	if err := cart.ApplyDiscount("p1", 10); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	line = cart.Lines()[0]
	if line.Price != 9 || line.Total != 27 {
		t.Fatalf("after 10%%: price %v total %v, want 9 / 27", line.Price, line.Total)
	}
	if line.OriginalPrice != 10 {
		t.Fatalf("original price changed to %v", line.OriginalPrice)
	}

	if err := cart.ApplyDiscount("p1", 101); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("discount over 100%% = %v, want ErrInvalidDiscount", err)
	}
}

func TestCartAmountDiscount(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 2)

	if err := cart.ApplyAmountDiscount("p1", 2.5); err != nil {
		t.Fatalf("apply amount discount: %v", err)
	}
	line := cart.Lines()[0]
	if line.Price != 7.5 || line.Total != 15 {
		t.Fatalf("price %v total %v, want 7.5 / 15", line.Price, line.Total)
	}

	// An amount above the unit price clamps at zero instead of going
	// negative.
	if err := cart.ApplyAmountDiscount("p1", 15); err != nil {
		t.Fatalf("apply amount discount: %v", err)
	}
	if got := cart.Lines()[0].Price; got != 0 {
		t.Fatalf("clamped price = %v, want 0", got)
	}

	if err := cart.ApplyAmountDiscount("p1", -1); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("negative amount = %v, want ErrInvalidDiscount", err)
	}
}

func TestCartWholeCartDiscounts(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 2) // 20 of the 35 subtotal
	cart.Add(ibuprofen(), 1)   // 15 of the 35 subtotal

	if err := cart.ApplyCartDiscount(10); err != nil {
		t.Fatalf("apply cart discount: %v", err)
	}
	lines := cart.Lines()
	if lines[0].Price != 9 || lines[1].Price != 13.5 {
		t.Fatalf("prices %v / %v, want 9 / 13.5", lines[0].Price, lines[1].Price)
	}

	// A fixed cart amount is split by each line's share of the
	// original subtotal and replaces the percentage above.
	if err := cart.ApplyCartAmountDiscount(7); err != nil {
		t.Fatalf("apply cart amount discount: %v", err)
	}
	lines = cart.Lines()
	if lines[0].Price != 8 || lines[1].Price != 12 {
		t.Fatalf("prices %v / %v, want 8 / 12", lines[0].Price, lines[1].Price)
	}
	if got := cart.Total(); got != 28 {
		t.Fatalf("total = %v, want 28", got)
	}

	if err := cart.ApplyCartAmountDiscount(36); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("amount above subtotal = %v, want ErrInvalidDiscount", err)
	}
}

func TestCartAdjustPriceLastWriterWins(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 2)

	if err := cart.AdjustPrice("p1", 7.5); err != nil {
		t.Fatalf("adjust price: %v", err)
	}
	if got := cart.Lines()[0].Price; got != 7.5 {
		t.Fatalf("price after override = %v, want 7.5", got)
	}

	// A discount after an override starts from the original price.
	if err := cart.ApplyDiscount("p1", 50); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if got := cart.Lines()[0].Price; got != 5 {
		t.Fatalf("price after discount = %v, want 5", got)
	}

	// And an override after a discount replaces it again.
	if err := cart.AdjustPrice("p1", 12); err != nil {
		t.Fatalf("adjust price: %v", err)
	}
	if got := cart.Lines()[0].Price; got != 12 {
		t.Fatalf("price after second override = %v, want 12", got)
	}

	if err := cart.AdjustPrice("p1", 0); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("zero price = %v, want ErrInvalidPrice", err)
	}
}

func TestCartTotals(t *testing.T) {
	cart := NewCart()
	cart.Add(paracetamol(), 2)
	cart.Add(ibuprofen(), 1)

	if got := cart.Subtotal(); got != 35 {
		t.Fatalf("subtotal = %v, want 35", got)
	}

	if err := cart.ApplyDiscount("p1", 10); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if got := cart.Total(); got != 33 {
		t.Fatalf("total = %v, want 33", got)
	}
	if got := cart.Discount(); got != 2 {
		t.Fatalf("discount = %v, want 2", got)
	}

	cart.Clear()
	if cart.Len() != 0 || cart.Total() != 0 {
		t.Fatalf("cart not empty after clear")
	}
}
