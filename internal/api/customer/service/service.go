package customerService

import (
	"PharmaPOS/internal/api/customer"
	customerRepository "PharmaPOS/internal/api/customer/repository"
	"PharmaPOS/internal/entity"
	"PharmaPOS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ICustomerService interface {
	CreateCustomer(ctx context.Context, req customer.CreateCustomerRequest) (entity.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (entity.Customer, error)
	GetCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error)
	UpdateCustomer(ctx context.Context, req customer.UpdateCustomerRequest) error
	DeleteCustomer(ctx context.Context, id string) error
}

type customerService struct {
	log                *logrus.Logger
	customerRepository customerRepository.Repository
	utils              utils.IUtils
}

func NewCustomerService(log *logrus.Logger, cr customerRepository.Repository, utils utils.IUtils) ICustomerService {
	return &customerService{
		log:                log,
		customerRepository: cr,
		utils:              utils,
	}
}
