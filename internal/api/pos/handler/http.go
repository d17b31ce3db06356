package posHandler

import (
	posService "PharmaPOS/internal/api/pos/service"
	"PharmaPOS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PosHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	posService posService.IPosService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	posService posService.IPosService,
) *PosHandler {
	return &PosHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		posService: posService,
	}
}

func (h *PosHandler) Start(srv fiber.Router) {
	terminals := srv.Group("/terminals")

	terminals.Get("/:terminalId", h.GetTerminal)
	terminals.Get("/:terminalId/search", h.Search)
	terminals.Post("/:terminalId/quantity", h.SetQuantitySelection)
	terminals.Post("/:terminalId/cart", h.AddToCart)
	terminals.Put("/:terminalId/cart", h.SetCartQuantity)
	terminals.Delete("/:terminalId/cart/:productId", h.RemoveFromCart)
	terminals.Delete("/:terminalId/cart", h.ClearCart)
	terminals.Post("/:terminalId/cart/discount", h.ApplyDiscount)
	terminals.Post("/:terminalId/cart/price", h.AdjustPrice)
	terminals.Post("/:terminalId/checkout/open", h.OpenCheckout)
	terminals.Delete("/:terminalId/checkout", h.CloseCheckout)
	terminals.Post("/:terminalId/checkout", h.Checkout)

	sales := srv.Group("/sales")
	sales.Get("/", h.GetSales)
	sales.Get("/:id", h.GetSaleByID)
	sales.Get("/:id/payment", h.CheckPaymentStatus)
	sales.Post("/callback", h.PaymentCallback)
}
