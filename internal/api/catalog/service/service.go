package catalogService

import (
	"PharmaPOS/internal/api/catalog"
	catalogRepository "PharmaPOS/internal/api/catalog/repository"
	"PharmaPOS/internal/entity"
	"PharmaPOS/pkg/redis"
	"PharmaPOS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ICatalogService interface {
	CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (entity.Product, error)
	GetProductByID(ctx context.Context, id string) (entity.Product, error)
	GetProducts(ctx context.Context, limit, offset int) ([]entity.Product, error)
	SearchProducts(ctx context.Context, term string) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, req catalog.UpdateProductRequest) error
	DeleteProduct(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) error
}

type catalogService struct {
	log               *logrus.Logger
	catalogRepository catalogRepository.Repository
	cache             redis.IRedis
	utils             utils.IUtils
}

func NewCatalogService(log *logrus.Logger, cr catalogRepository.Repository, cache redis.IRedis, utils utils.IUtils) ICatalogService {
	return &catalogService{
		log:               log,
		catalogRepository: cr,
		cache:             cache,
		utils:             utils,
	}
}
