package catalogHandler

import (
	catalogService "PharmaPOS/internal/api/catalog/service"
	"PharmaPOS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	catalogService catalogService.ICatalogService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	catalogService catalogService.ICatalogService,
) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) Start(srv fiber.Router) {
	products := srv.Group("/products")

	products.Post("/", h.CreateProduct)
	products.Get("/", h.GetProducts)
	products.Get("/search", h.SearchProducts)
	products.Get("/:id", h.GetProductByID)
	products.Put("/", h.UpdateProduct)
	products.Delete("/:id", h.DeleteProduct)
}
