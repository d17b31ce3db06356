package customerHandler

import (
	customerService "PharmaPOS/internal/api/customer/service"
	"PharmaPOS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CustomerHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	customerService customerService.ICustomerService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	customerService customerService.ICustomerService,
) *CustomerHandler {
	return &CustomerHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		customerService: customerService,
	}
}

func (h *CustomerHandler) Start(srv fiber.Router) {
	customers := srv.Group("/customers")

	customers.Post("/", h.CreateCustomer)
	customers.Get("/", h.GetCustomers)
	customers.Get("/:id", h.GetCustomerByID)
	customers.Put("/", h.UpdateCustomer)
	customers.Delete("/:id", h.DeleteCustomer)
}
