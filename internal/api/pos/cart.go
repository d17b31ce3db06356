package pos

import (
	"math"

	"PharmaPOS/internal/entity"
)

const (
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

// Cart is the order being built on one terminal. It is not safe for
// concurrent use, the owning terminal serializes access.
type Cart struct {
	lines []entity.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts a product in the cart. Adding a product that is already in
// the cart increases its quantity, the unit price of the existing line
// is kept. Quantities below one are coerced to one.
func (c *Cart) Add(product entity.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			c.lines[i].Total = roundMoney(c.lines[i].Price * float64(c.lines[i].Quantity))
			return
		}
	}
	c.lines = append(c.lines, entity.CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.Price,
		PurchasePrice: product.PurchasePrice,
		Quantity:      quantity,
		Total:         roundMoney(product.Price * float64(quantity)),
	})
}

// SetQuantity changes how many units a line holds. Zero or less
// removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return c.deleteLine(productID)
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			c.lines[i].Total = roundMoney(c.lines[i].Price * float64(quantity))
			return nil
		}
	}
	return ErrProductNotInCart
}

// Remove takes one unit off a line and drops the line once it hits
// zero. Removing a product that is not in the cart does nothing.
func (c *Cart) Remove(productID string) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if c.lines[i].Quantity <= 1 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				return nil
			}
			c.lines[i].Quantity--
			c.lines[i].Total = roundMoney(c.lines[i].Price * float64(c.lines[i].Quantity))
			return nil
		}
	}
	return nil
}

func (c *Cart) deleteLine(productID string) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrProductNotInCart
}

func (c *Cart) Clear() {
	c.lines = nil
}

// ApplyDiscount sets a line's unit price to the given percentage off
// its original price. The discount always starts from the original
// price, applying twenty percent twice still leaves twenty percent
// off, not thirty six.
func (c *Cart) ApplyDiscount(productID string, percent float64) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.discountLine(i, percent)
			return nil
		}
	}
	return ErrProductNotInCart
}

// ApplyAmountDiscount takes a fixed amount off a line's original unit
// price. The price never goes below zero.
func (c *Cart) ApplyAmountDiscount(productID string, amount float64) error {
	if amount < 0 {
		return ErrInvalidDiscount
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			price := c.lines[i].OriginalPrice - amount
			if price < 0 {
				price = 0
			}
			c.lines[i].Price = roundMoney(price)
			c.lines[i].Total = roundMoney(c.lines[i].Price * float64(c.lines[i].Quantity))
			return nil
		}
	}
	return ErrProductNotInCart
}

// ApplyCartDiscount applies the same percentage to every line, each
// computed from its original price.
func (c *Cart) ApplyCartDiscount(percent float64) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	for i := range c.lines {
		c.discountLine(i, percent)
	}
	return nil
}

// ApplyCartAmountDiscount spreads a fixed amount across the cart in
// proportion to each line's share of the original subtotal.
func (c *Cart) ApplyCartAmountDiscount(amount float64) error {
	subtotal := c.Subtotal()
	if amount < 0 || amount > subtotal {
		return ErrInvalidDiscount
	}
	if subtotal == 0 {
		return nil
	}
	for i := range c.lines {
		lineOriginal := c.lines[i].OriginalPrice * float64(c.lines[i].Quantity)
		lineDiscount := amount * lineOriginal / subtotal
		price := c.lines[i].OriginalPrice - lineDiscount/float64(c.lines[i].Quantity)
		if price < 0 {
			price = 0
		}
		c.lines[i].Price = roundMoney(price)
		c.lines[i].Total = roundMoney(c.lines[i].Price * float64(c.lines[i].Quantity))
	}
	return nil
}

func (c *Cart) discountLine(i int, percent float64) {
	c.lines[i].Price = roundMoney(c.lines[i].OriginalPrice * (1 - percent/100))
	c.lines[i].Total = roundMoney(c.lines[i].Price * float64(c.lines[i].Quantity))
}

// AdjustPrice overrides a line's unit price outright. A later discount
// replaces the override and a later override replaces the discount,
// whichever came last wins.
func (c *Cart) AdjustPrice(productID string, price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Price = roundMoney(price)
			c.lines[i].Total = roundMoney(c.lines[i].Price * float64(c.lines[i].Quantity))
			return nil
		}
	}
	return ErrProductNotInCart
}

// Lines returns a copy of the cart in insertion order.
func (c *Cart) Lines() []entity.CartLine {
	out := make([]entity.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal is the cart value before any discounts or overrides.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, line := range c.lines {
		sum += line.OriginalPrice * float64(line.Quantity)
	}
	return roundMoney(sum)
}

// Total is what the customer pays.
func (c *Cart) Total() float64 {
	var sum float64
	for _, line := range c.lines {
		sum += line.Total
	}
	return roundMoney(sum)
}

// Discount is how much the customer saves against the original prices.
func (c *Cart) Discount() float64 {
	return roundMoney(c.Subtotal() - c.Total())
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
