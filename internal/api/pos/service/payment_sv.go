package posService

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/pos"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
)

// ProcessPaymentCallback handles the bank notification for a virtual
// account payment and marks the matching sale as completed.
func (s *posService) ProcessPaymentCallback(ctx context.Context, req pos.PaymentCallbackRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	sale, err := s.GetSaleByID(ctx, req.TrxId)
	if err != nil {
		return err
	}

	if sale.Status == entity.SaleStatusCompleted {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    sale.ID,
		}).Info("Payment callback for already completed sale")
		return nil
	}

	if paid, err := strconv.ParseFloat(req.PaidAmount.Value, 64); err == nil && paid < sale.Total {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    sale.ID,
			"paid":       paid,
			"total":      sale.Total,
		}).Warn("Payment callback with insufficient amount")
		return pos.ErrPaymentFailed
	}

	return s.CompleteSale(ctx, sale.ID)
}

// CheckPaymentStatus polls the bank for a pending transfer and
// completes the sale once the virtual account is paid.
func (s *posService) CheckPaymentStatus(ctx context.Context, saleID string) (pos.PaymentStatusResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sale, err := s.GetSaleByID(ctx, saleID)
	if err != nil {
		return pos.PaymentStatusResponse{}, err
	}

	if sale.Status == entity.SaleStatusCompleted {
		return pos.PaymentStatusResponse{SaleID: saleID, Status: sale.Status, Paid: true}, nil
	}
	if sale.Status != entity.SaleStatusAwaitingPayment || sale.VANumber == "" {
		return pos.PaymentStatusResponse{SaleID: saleID, Status: sale.Status, Paid: false}, nil
	}

	partnerServiceId := os.Getenv("DOKU_PARTNER_SERVICE_ID")
	customerNo := os.Getenv("DOKU_CUSTOMER_NO")

	paid, err := s.doku.CheckVAStatus(sale.VANumber, customerNo, partnerServiceId, saleID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sale_id":    saleID,
			"error":      err.Error(),
		}).Error("Failed to check virtual account status")
		return pos.PaymentStatusResponse{}, err
	}

	if paid {
		if err := s.CompleteSale(ctx, saleID); err != nil {
			return pos.PaymentStatusResponse{}, err
		}
		sale.Status = entity.SaleStatusCompleted
	}

	return pos.PaymentStatusResponse{SaleID: saleID, Status: sale.Status, Paid: paid}, nil
}
