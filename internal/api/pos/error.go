package pos

import "PharmaPOS/pkg/response"

var (
	ErrTerminalNotFound   = response.NewError(404, "terminal not found")
	ErrCartEmpty          = response.NewError(400, "cart is empty")
	ErrProductNotInCart   = response.NewError(404, "product is not in the cart")
	ErrInsufficientStock  = response.NewError(409, "insufficient stock")
	ErrCheckoutNotOpen    = response.NewError(409, "checkout is not open")
	ErrInvalidDiscount    = response.NewError(400, "discount must be between 0 and 100 percent")
	ErrInvalidPrice       = response.NewError(400, "price must be greater than zero")
	ErrInvalidAmountPaid  = response.NewError(400, "amount paid is less than the total")
	ErrSaleNotFound       = response.NewError(404, "sale not found")
	ErrInvalidDateRange   = response.NewError(400, "invalid date range, use from/to as YYYY-MM-DD with from <= to")
	ErrPrinterUnavailable = response.NewError(503, "receipt printer is unavailable")
	ErrPaymentFailed      = response.NewError(502, "payment could not be created")
)
