package customerHandler

import (
	"PharmaPOS/internal/api/customer"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"PharmaPOS/pkg/handlerUtil"
	"PharmaPOS/pkg/log"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"strconv"
	"time"
)

func (h *CustomerHandler) CreateCustomer(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create customer request")

	var req customer.CreateCustomerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	cust, err := h.customerService.CreateCustomer(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_customer")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, toCustomerResponse(cust))
	}
}

func (h *CustomerHandler) GetCustomers(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	customers, err := h.customerService.GetCustomers(c, limit, offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_customers")
	}

	responses := make([]customer.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		responses = append(responses, toCustomerResponse(cust))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, responses)
	}
}

func (h *CustomerHandler) GetCustomerByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("customer ID is required"), ctx.Path())
	}

	cust, err := h.customerService.GetCustomerByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_customer")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, toCustomerResponse(cust))
	}
}

func (h *CustomerHandler) UpdateCustomer(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req customer.UpdateCustomerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.customerService.UpdateCustomer(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_customer")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Customer updated successfully",
		})
	}
}

func (h *CustomerHandler) DeleteCustomer(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("customer ID is required"), ctx.Path())
	}

	if err := h.customerService.DeleteCustomer(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_customer")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Customer deleted successfully",
		})
	}
}

func toCustomerResponse(cust entity.Customer) customer.CustomerResponse {
	return customer.CustomerResponse{
		ID:        cust.ID,
		Name:      cust.Name,
		Phone:     cust.Phone,
		Email:     cust.Email,
		Address:   cust.Address,
		CreatedAt: cust.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cust.UpdatedAt.Format(time.RFC3339),
	}
}
