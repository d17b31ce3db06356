package customerService

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/customer"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
)

func (s *customerService) CreateCustomer(ctx context.Context, req customer.CreateCustomerRequest) (entity.Customer, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.customerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Customer{}, err
	}

	if req.Phone != "" {
		_, err := repo.Customer.GetCustomerByPhone(ctx, req.Phone)
		if err == nil {
			return entity.Customer{}, customer.ErrPhoneAlreadyExists
		}
		if !errors.Is(err, customer.ErrCustomerNotFound) {
			return entity.Customer{}, err
		}
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Customer{}, err
	}

	cust := entity.Customer{
		ID:        ULID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.Customer.CreateCustomer(ctx, cust); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create customer")
		return entity.Customer{}, err
	}

	return cust, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id string) (entity.Customer, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.customerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Customer{}, err
	}

	cust, err := repo.Customer.GetCustomerByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get customer by ID")
		return entity.Customer{}, err
	}

	return cust, nil
}

func (s *customerService) GetCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	repo, err := s.customerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	customers, err := repo.Customer.GetCustomers(ctx, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list customers")
		return nil, err
	}

	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, req customer.UpdateCustomerRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.customerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	cust := entity.Customer{
		ID:      req.ID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if err := repo.Customer.UpdateCustomer(ctx, cust); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         req.ID,
			"error":      err.Error(),
		}).Error("Failed to update customer")
		return err
	}

	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.customerRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Customer.DeleteCustomer(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete customer")
		return err
	}

	return nil
}
