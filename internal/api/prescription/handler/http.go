package prescriptionHandler

import (
	prescriptionService "PharmaPOS/internal/api/prescription/service"
	"PharmaPOS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PrescriptionHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	prescriptionService prescriptionService.IPrescriptionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	prescriptionService prescriptionService.IPrescriptionService,
) *PrescriptionHandler {
	return &PrescriptionHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		prescriptionService: prescriptionService,
	}
}

func (h *PrescriptionHandler) Start(srv fiber.Router) {
	prescriptions := srv.Group("/prescriptions")

	prescriptions.Post("/", h.CreatePrescription)
	prescriptions.Get("/", h.GetPrescriptions)
	prescriptions.Get("/:id", h.GetPrescriptionByID)
	prescriptions.Post("/:id/dispense", h.DispensePrescription)
	prescriptions.Post("/:id/cancel", h.CancelPrescription)
}
