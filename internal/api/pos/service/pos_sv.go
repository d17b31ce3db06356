package posService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/pos"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
)

func (s *posService) Search(ctx context.Context, terminalID, term string) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	products, err := s.catalogService.SearchProducts(ctx, term)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"terminal_id": terminalID,
			"term":        term,
			"error":       err.Error(),
		}).Error("Failed to search products for terminal")
		return nil, err
	}

	// Out of stock products are not sellable, keep them off the result
	// list so selection indexes only point at items that can be added.
	inStock := make([]entity.Product, 0, len(products))
	for _, product := range products {
		if product.Stock > 0 {
			inStock = append(inStock, product)
		}
	}

	s.Terminal(terminalID).SetResults(inStock)

	return inStock, nil
}

func (s *posService) SetQuantitySelection(terminalID, productID string, quantity int) {
	s.Terminal(terminalID).SetQuantitySelection(productID, quantity)
}

func (s *posService) AddToCart(ctx context.Context, terminalID, productID string, quantity int) error {
	requestID := contextPkg.GetRequestID(ctx)
	term := s.Terminal(terminalID)

	product, ok := s.resultByID(term, productID)
	if !ok {
		var err error
		product, err = s.catalogService.GetProductByID(ctx, productID)
		if err != nil {
			return err
		}
	}

	if quantity < 1 {
		quantity = 1
	}
	if product.Stock < quantity {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"terminal_id": terminalID,
			"product_id":  productID,
			"stock":       product.Stock,
			"quantity":    quantity,
		}).Warn("Not enough stock for cart addition")
		return pos.ErrInsufficientStock
	}

	term.AddToCart(product, quantity)

	return nil
}

func (s *posService) resultByID(term *pos.Terminal, productID string) (entity.Product, bool) {
	for _, product := range term.Results() {
		if product.ID == productID {
			return product, true
		}
	}
	return entity.Product{}, false
}

func (s *posService) RemoveFromCart(terminalID, productID string) error {
	return s.Terminal(terminalID).RemoveFromCart(productID)
}

func (s *posService) SetCartQuantity(terminalID, productID string, quantity int) error {
	return s.Terminal(terminalID).SetCartQuantity(productID, quantity)
}

func (s *posService) ApplyDiscount(terminalID, productID, kind string, value float64) error {
	return s.Terminal(terminalID).ApplyDiscount(productID, kind, value)
}

func (s *posService) AdjustPrice(terminalID, productID string, price float64) error {
	return s.Terminal(terminalID).AdjustPrice(productID, price)
}

func (s *posService) ClearCart(terminalID string) {
	s.Terminal(terminalID).ClearCart()
}

func (s *posService) OpenCheckout(terminalID string) error {
	return s.Terminal(terminalID).OpenCheckout()
}

func (s *posService) CloseCheckout(terminalID string) {
	s.Terminal(terminalID).CloseCheckout()
}

func (s *posService) GetSaleByID(ctx context.Context, id string) (entity.Sale, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.posRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Sale{}, err
	}

	sale, err := repo.Sale.GetSaleByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get sale by ID")
		return entity.Sale{}, err
	}

	return sale, nil
}

const saleDateLayout = "2006-01-02"

// GetSales lists the sales of a calendar date range, both bounds
// inclusive.
func (s *posService) GetSales(ctx context.Context, from, to string) ([]entity.Sale, error) {
	requestID := contextPkg.GetRequestID(ctx)

	fromDate, err := time.Parse(saleDateLayout, from)
	if err != nil {
		return nil, pos.ErrInvalidDateRange
	}
	toDate, err := time.Parse(saleDateLayout, to)
	if err != nil {
		return nil, pos.ErrInvalidDateRange
	}
	if toDate.Before(fromDate) {
		return nil, pos.ErrInvalidDateRange
	}

	repo, err := s.posRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	// The query takes an exclusive upper bound, push it to the next
	// midnight so the whole "to" day is included.
	upper := toDate.AddDate(0, 0, 1).Format(saleDateLayout)

	sales, err := repo.Sale.GetSalesByDateRange(ctx, fromDate.Format(saleDateLayout), upper)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"from":       from,
			"to":         to,
			"error":      err.Error(),
		}).Error("Failed to get sales by date range")
		return nil, err
	}

	return sales, nil
}

func (s *posService) CompleteSale(ctx context.Context, saleID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.posRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Sale.UpdateSaleStatus(ctx, saleID, entity.SaleStatusCompleted); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    saleID,
			"error":      err.Error(),
		}).Error("Failed to mark sale completed")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"sale_id":    saleID,
	}).Info("Sale payment confirmed")

	return nil
}
