package posHandler

import (
	"PharmaPOS/internal/api/pos"
	contextPkg "PharmaPOS/pkg/context"
	"PharmaPOS/pkg/handlerUtil"
	"PharmaPOS/pkg/log"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *PosHandler) GetTerminal(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")
	if terminalID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("terminal ID is required"), ctx.Path())
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) Search(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")
	term := ctx.Query("q")
	if term == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("search term is required"), ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"terminal_id": terminalID,
		"term":        term,
	}).Debug("Processing terminal search request")

	if _, err := h.posService.Search(c, terminalID, term); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "terminal_search")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
	}
}

func (h *PosHandler) SetQuantitySelection(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req pos.QuantitySelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.posService.SetQuantitySelection(terminalID, req.ProductID, req.Quantity)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) AddToCart(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req pos.AddToCartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.posService.AddToCart(c, terminalID, req.ProductID, req.Quantity); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_to_cart")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
	}
}

func (h *PosHandler) SetCartQuantity(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req pos.SetQuantityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.posService.SetCartQuantity(terminalID, req.ProductID, req.Quantity); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "set_cart_quantity")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) RemoveFromCart(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")
	productID := ctx.Params("productId")
	if productID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("product ID is required"), ctx.Path())
	}

	if err := h.posService.RemoveFromCart(terminalID, productID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "remove_from_cart")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) ClearCart(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")
	h.posService.ClearCart(terminalID)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) ApplyDiscount(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req pos.DiscountRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.posService.ApplyDiscount(terminalID, req.ProductID, req.Type, req.Value); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "apply_discount")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) AdjustPrice(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	var req pos.AdjustPriceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.posService.AdjustPrice(terminalID, req.ProductID, req.Price); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "adjust_price")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) OpenCheckout(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	if err := h.posService.OpenCheckout(terminalID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_checkout")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) CloseCheckout(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")
	h.posService.CloseCheckout(terminalID)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, h.terminalResponse(terminalID))
}

func (h *PosHandler) Checkout(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	terminalID := ctx.Params("terminalId")

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"terminal_id": terminalID,
		"path":        ctx.Path(),
	}).Debug("Processing checkout request")

	var req pos.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.posService.Checkout(c, terminalID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "checkout")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, response)
	}
}

func (h *PosHandler) GetSaleByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("sale ID is required"), ctx.Path())
	}

	sale, err := h.posService.GetSaleByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_sale")
	}

	response := pos.SaleResponse{
		ID:            sale.ID,
		TerminalID:    sale.TerminalID,
		CustomerID:    sale.CustomerID,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		AmountPaid:    sale.AmountPaid,
		Change:        sale.Change,
		VANumber:      sale.VANumber,
		Status:        sale.Status,
		Items:         sale.Items,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *PosHandler) GetSales(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	from := ctx.Query("from")
	to := ctx.Query("to")
	if from == "" || to == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("from and to dates are required"), ctx.Path())
	}

	sales, err := h.posService.GetSales(c, from, to)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_sales")
	}

	response := make([]pos.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		response = append(response, pos.SaleResponse{
			ID:            sale.ID,
			TerminalID:    sale.TerminalID,
			CustomerID:    sale.CustomerID,
			Subtotal:      sale.Subtotal,
			Discount:      sale.Discount,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			AmountPaid:    sale.AmountPaid,
			Change:        sale.Change,
			VANumber:      sale.VANumber,
			Status:        sale.Status,
			Items:         sale.Items,
			CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
		})
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *PosHandler) CheckPaymentStatus(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("sale ID is required"), ctx.Path())
	}

	status, err := h.posService.CheckPaymentStatus(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "check_payment_status")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, status)
	}
}

func (h *PosHandler) PaymentCallback(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req pos.PaymentCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"trxId":      req.TrxId,
		"paidAmount": req.PaidAmount.Value,
		"channel":    req.AdditionalInfo.Channel,
	}).Info("Received payment callback")

	if err := h.posService.ProcessPaymentCallback(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_payment_callback")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"responseCode":    "2002500",
			"responseMessage": "success",
			"virtualAccountData": map[string]interface{}{
				"partnerServiceId": req.PartnerServiceId,
				"customerNo":       req.CustomerNo,
				"virtualAccountNo": req.VirtualAccountNo,
				"paymentRequestId": req.PaymentRequestId,
				"trxId":            req.TrxId,
				"trxDateTime":      req.TrxDateTime,
			},
		})
	}
}

func (h *PosHandler) terminalResponse(terminalID string) pos.TerminalResponse {
	term := h.posService.Terminal(terminalID)
	subtotal, discount, total := term.CartTotals()

	return pos.TerminalResponse{
		TerminalID:   terminalID,
		Results:      term.Results(),
		Quantities:   term.QuantitySelections(),
		CheckoutOpen: term.CheckoutOpen(),
		Cart: pos.CartResponse{
			Lines:    term.CartLines(),
			Subtotal: subtotal,
			Discount: discount,
			Total:    total,
		},
	}
}
