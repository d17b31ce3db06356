package posService

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/pos"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"PharmaPOS/pkg/doku"
	"PharmaPOS/pkg/escpos"
)

const vaExpiry = time.Hour

// Checkout finalizes the cart on a terminal into a sale. Stock is
// decremented in the same transaction that records the sale, so a
// failed decrement cancels the whole checkout.
func (s *posService) Checkout(ctx context.Context, terminalID string, req pos.CheckoutRequest) (pos.CheckoutResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	term := s.Terminal(terminalID)

	if !term.CheckoutOpen() {
		return pos.CheckoutResponse{}, pos.ErrCheckoutNotOpen
	}
	lines := term.CartLines()
	if len(lines) == 0 {
		return pos.CheckoutResponse{}, pos.ErrCartEmpty
	}

	subtotal, discount, total := term.CartTotals()

	saleID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return pos.CheckoutResponse{}, err
	}

	sale := entity.Sale{
		ID:            saleID,
		TerminalID:    terminalID,
		CustomerID:    req.CustomerID,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
	}

	switch req.PaymentMethod {
	case entity.PaymentMethodCash:
		if req.AmountPaid < total {
			return pos.CheckoutResponse{}, pos.ErrInvalidAmountPaid
		}
		sale.AmountPaid = req.AmountPaid
		sale.Change = req.AmountPaid - total
		sale.Status = entity.SaleStatusCompleted

	case entity.PaymentMethodTransfer:
		va, err := s.createVirtualAccount(ctx, saleID, total, req)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"sale_id":    saleID,
				"error":      err.Error(),
			}).Error("Failed to create virtual account for sale")
			return pos.CheckoutResponse{}, pos.ErrPaymentFailed
		}
		sale.VANumber = va.VirtualAccountNo
		sale.Status = entity.SaleStatusAwaitingPayment
	}

	for _, line := range lines {
		itemID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return pos.CheckoutResponse{}, err
		}
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:            itemID,
			SaleID:        saleID,
			ProductID:     line.ProductID,
			ProductName:   line.Name,
			Quantity:      line.Quantity,
			Price:         line.Price,
			OriginalPrice: line.OriginalPrice,
			PurchasePrice: line.PurchasePrice,
			Total:         line.Total,
		})
	}

	repo, err := s.posRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return pos.CheckoutResponse{}, err
	}

	if err := s.persistSale(ctx, repo.Sale.CreateSale, repo.Stock.DecrementStock, sale); err != nil {
		if rollbackErr := repo.Rollback(); rollbackErr != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      rollbackErr.Error(),
			}).Error("Failed to rollback checkout")
		}
		return pos.CheckoutResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    saleID,
			"error":      err.Error(),
		}).Error("Failed to commit checkout")
		return pos.CheckoutResponse{}, err
	}

	// The sale is recorded at this point. Receipt delivery failures
	// are logged and do not undo the checkout.
	if req.PrintReceipt {
		if err := s.printer.PrintReceipt(buildReceipt(sale)); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"sale_id":    saleID,
				"error":      err.Error(),
			}).Warn("Failed to print receipt")
		}
	}
	if req.EmailReceipt && req.CustomerEmail != "" {
		if err := s.smtp.SendReceipt(req.CustomerEmail, "Your pharmacy receipt", renderEmailReceipt(sale)); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"sale_id":    saleID,
				"error":      err.Error(),
			}).Warn("Failed to email receipt")
		}
	}

	term.ClearCart()

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"terminal_id": terminalID,
		"sale_id":     saleID,
		"total":       total,
		"method":      req.PaymentMethod,
	}).Info("Checkout completed")

	return pos.CheckoutResponse{
		SaleID:        saleID,
		Status:        sale.Status,
		Total:         total,
		AmountPaid:    sale.AmountPaid,
		Change:        sale.Change,
		PaymentMethod: sale.PaymentMethod,
		VANumber:      sale.VANumber,
	}, nil
}

func (s *posService) persistSale(
	ctx context.Context,
	createSale func(context.Context, entity.Sale) error,
	decrementStock func(context.Context, string, int) error,
	sale entity.Sale,
) error {
	if err := createSale(ctx, sale); err != nil {
		return err
	}
	for _, item := range sale.Items {
		if err := decrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *posService) createVirtualAccount(ctx context.Context, saleID string, total float64, req pos.CheckoutRequest) (*doku.CreateVaResponse, error) {
	name := "Walk-in customer"
	email := req.CustomerEmail
	phone := ""

	if req.CustomerID != "" {
		if cust, err := s.customerService.GetCustomerByID(ctx, req.CustomerID); err == nil {
			name = cust.Name
			phone = cust.Phone
			if email == "" {
				email = cust.Email
			}
		}
	}

	return s.doku.CreateVirtualAccount(doku.CreateVaRequest{
		Name:            name,
		Email:           email,
		Phone:           phone,
		Amount:          total,
		TrxId:           saleID,
		Bank:            req.Bank,
		ExpiredDuration: vaExpiry,
	})
}

func buildReceipt(sale entity.Sale) escpos.Receipt {
	lines := make([]escpos.ReceiptLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, escpos.ReceiptLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		})
	}

	return escpos.Receipt{
		StoreName:     "PharmaPOS",
		SaleID:        sale.ID,
		Timestamp:     time.Now(),
		Lines:         lines,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		AmountPaid:    sale.AmountPaid,
		Change:        sale.Change,
		Footer:        "Thank you, get well soon!",
	}
}

func renderEmailReceipt(sale entity.Sale) string {
	body := fmt.Sprintf("Receipt %s\n\n", sale.ID)
	for _, item := range sale.Items {
		body += fmt.Sprintf("%d x %s  %.2f\n", item.Quantity, item.ProductName, item.Total)
	}
	body += fmt.Sprintf("\nSubtotal: %.2f\nDiscount: %.2f\nTotal: %.2f\n", sale.Subtotal, sale.Discount, sale.Total)
	if sale.PaymentMethod == entity.PaymentMethodCash {
		body += fmt.Sprintf("Paid: %.2f\nChange: %.2f\n", sale.AmountPaid, sale.Change)
	} else if sale.VANumber != "" {
		body += fmt.Sprintf("Virtual account: %s\n", sale.VANumber)
	}
	return body
}
