package prescriptionHandler

import (
	"PharmaPOS/internal/api/prescription"
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

func (h *PrescriptionHandler) CreatePrescription(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create prescription request")

	var req prescription.CreatePrescriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	p, err := h.prescriptionService.CreatePrescription(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_prescription")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, toPrescriptionResponse(p))
	}
}

func (h *PrescriptionHandler) GetPrescriptions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var (
		prescriptions []entity.Prescription
		err           error
	)

	if customerID := ctx.Query("customer_id"); customerID != "" {
		prescriptions, err = h.prescriptionService.GetPrescriptionsByCustomer(c, customerID)
	} else {
		status := ctx.Query("status", entity.PrescriptionStatusPending)
		limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
		offset, _ := strconv.Atoi(ctx.Query("offset", "0"))
		prescriptions, err = h.prescriptionService.GetPrescriptionsByStatus(c, status, limit, offset)
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_prescriptions")
	}

	responses := make([]prescription.PrescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		responses = append(responses, toPrescriptionResponse(p))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, responses)
	}
}

func (h *PrescriptionHandler) GetPrescriptionByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("prescription ID is required"), ctx.Path())
	}

	p, err := h.prescriptionService.GetPrescriptionByID(c, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_prescription")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, toPrescriptionResponse(p))
	}
}

func (h *PrescriptionHandler) DispensePrescription(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("prescription ID is required"), ctx.Path())
	}

	if err := h.prescriptionService.DispensePrescription(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "dispense_prescription")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Prescription dispensed successfully",
		})
	}
}

func (h *PrescriptionHandler) CancelPrescription(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("prescription ID is required"), ctx.Path())
	}

	if err := h.prescriptionService.CancelPrescription(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "cancel_prescription")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Prescription cancelled successfully",
		})
	}
}

func toPrescriptionResponse(p entity.Prescription) prescription.PrescriptionResponse {
	items := make([]prescription.PrescriptionItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, prescription.PrescriptionItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Dosage:      item.Dosage,
			Quantity:    item.Quantity,
		})
	}

	return prescription.PrescriptionResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		DoctorName: p.DoctorName,
		IssuedAt:   p.IssuedAt.Format(time.RFC3339),
		Status:     p.Status,
		Notes:      p.Notes,
		Items:      items,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
