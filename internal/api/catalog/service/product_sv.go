package catalogService

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/catalog"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"PharmaPOS/pkg/redis"
)

const (
	searchLimit    = 10
	searchCacheTTL = 5 * time.Minute
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *catalogService) CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Product{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Product{}, err
	}

	product := entity.Product{
		ID:            ULID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
		Unit:          req.Unit,
		RequiresRx:    req.RequiresRx,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := repo.Product.CreateProduct(ctx, product); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create product")
		return entity.Product{}, err
	}

	s.invalidateSearchCache(ctx, requestID)

	return product, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Product{}, err
	}

	product, err := repo.Product.GetProductByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get product by ID")
		return entity.Product{}, err
	}

	return product, nil
}

func (s *catalogService) GetProducts(ctx context.Context, limit, offset int) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	products, err := repo.Product.GetProducts(ctx, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list products")
		return nil, err
	}

	return products, nil
}

// SearchProducts serves repeated terms from the cache, the till runs
// the same few searches all day.
func (s *catalogService) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if cached, err := s.cache.GetSearchCache(ctx, term); err == nil {
		var products []entity.Product
		if err := json.UnmarshalFromString(cached, &products); err == nil {
			return products, nil
		}
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"term":       term,
			"error":      err.Error(),
		}).Warn("Search cache lookup failed")
	}

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	products, err := repo.Product.SearchProducts(ctx, term, searchLimit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"term":       term,
			"error":      err.Error(),
		}).Error("Failed to search products")
		return nil, err
	}

	if payload, err := json.MarshalToString(products); err == nil {
		if err := s.cache.SetSearchCache(ctx, term, payload, searchCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"term":       term,
				"error":      err.Error(),
			}).Warn("Failed to cache search results")
		}
	}

	return products, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, req catalog.UpdateProductRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	product := entity.Product{
		ID:            req.ID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
		Unit:          req.Unit,
		RequiresRx:    req.RequiresRx,
	}

	if err := repo.Product.UpdateProduct(ctx, product); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         product.ID,
			"error":      err.Error(),
		}).Error("Failed to update product")
		return err
	}

	s.invalidateSearchCache(ctx, requestID)

	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Product.DeleteProduct(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete product")
		return err
	}

	s.invalidateSearchCache(ctx, requestID)

	return nil
}

func (s *catalogService) DecrementStock(ctx context.Context, id string, quantity int) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.catalogRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Product.DecrementStock(ctx, id, quantity); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"quantity":   quantity,
			"error":      err.Error(),
		}).Error("Failed to decrement stock")
		return err
	}

	s.invalidateSearchCache(ctx, requestID)

	return nil
}

func (s *catalogService) invalidateSearchCache(ctx context.Context, requestID string) {
	if err := s.cache.InvalidateSearchCache(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate search cache")
	}
}
