package prescriptionService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/prescription"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
)

func (s *prescriptionService) CreatePrescription(ctx context.Context, req prescription.CreatePrescriptionRequest) (entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(req.Items) == 0 {
		return entity.Prescription{}, prescription.ErrEmptyPrescription
	}

	issuedAt, err := time.Parse(time.RFC3339, req.IssuedAt)
	if err != nil {
		issuedAt = time.Now()
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Prescription{}, err
	}

	items := make([]entity.PrescriptionItem, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.catalogService.GetProductByID(ctx, input.ProductID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"product_id": input.ProductID,
				"error":      err.Error(),
			}).Warn("Prescription references unknown product")
			return entity.Prescription{}, err
		}

		itemID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return entity.Prescription{}, err
		}

		items = append(items, entity.PrescriptionItem{
			ID:             itemID,
			PrescriptionID: ULID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			Dosage:         input.Dosage,
			Quantity:       input.Quantity,
		})
	}

	p := entity.Prescription{
		ID:         ULID,
		CustomerID: req.CustomerID,
		DoctorName: req.DoctorName,
		IssuedAt:   issuedAt,
		Status:     entity.PrescriptionStatusPending,
		Notes:      req.Notes,
		Items:      items,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	repo, err := s.prescriptionRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Prescription{}, err
	}

	if err := repo.Prescription.CreatePrescription(ctx, p); err != nil {
		if rollbackErr := repo.Rollback(); rollbackErr != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      rollbackErr.Error(),
			}).Error("Failed to rollback prescription creation")
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create prescription")
		return entity.Prescription{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit prescription creation")
		return entity.Prescription{}, err
	}

	return p, nil
}

func (s *prescriptionService) GetPrescriptionByID(ctx context.Context, id string) (entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.prescriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Prescription{}, err
	}

	p, err := repo.Prescription.GetPrescriptionByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get prescription by ID")
		return entity.Prescription{}, err
	}

	return p, nil
}

func (s *prescriptionService) GetPrescriptionsByCustomer(ctx context.Context, customerID string) ([]entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.prescriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	prescriptions, err := repo.Prescription.GetPrescriptionsByCustomer(ctx, customerID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"customer_id": customerID,
			"error":       err.Error(),
		}).Error("Failed to get prescriptions by customer")
		return nil, err
	}

	return prescriptions, nil
}

func (s *prescriptionService) GetPrescriptionsByStatus(ctx context.Context, status string, limit, offset int) ([]entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	repo, err := s.prescriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	prescriptions, err := repo.Prescription.GetPrescriptionsByStatus(ctx, status, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Failed to get prescriptions by status")
		return nil, err
	}

	return prescriptions, nil
}

// DispensePrescription hands out the medication: the prescription moves
// to dispensed and the stock of every item is reduced.
func (s *prescriptionService) DispensePrescription(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.prescriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	p, err := repo.Prescription.GetPrescriptionByID(ctx, id)
	if err != nil {
		return err
	}

	switch p.Status {
	case entity.PrescriptionStatusDispensed:
		return prescription.ErrAlreadyDispensed
	case entity.PrescriptionStatusCancelled:
		return prescription.ErrPrescriptionCancelled
	}

	for _, item := range p.Items {
		if err := s.catalogService.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"product_id": item.ProductID,
				"error":      err.Error(),
			}).Error("Failed to decrement stock while dispensing")
			return err
		}
	}

	if err := repo.Prescription.UpdatePrescriptionStatus(ctx, id, entity.PrescriptionStatusDispensed); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to mark prescription dispensed")
		return err
	}

	return nil
}

func (s *prescriptionService) CancelPrescription(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.prescriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	p, err := repo.Prescription.GetPrescriptionByID(ctx, id)
	if err != nil {
		return err
	}

	if p.Status == entity.PrescriptionStatusDispensed {
		return prescription.ErrAlreadyDispensed
	}

	if err := repo.Prescription.UpdatePrescriptionStatus(ctx, id, entity.PrescriptionStatusCancelled); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to cancel prescription")
		return err
	}

	return nil
}
