package prescriptionService

import (
	catalogService "PharmaPOS/internal/api/catalog/service"
	"PharmaPOS/internal/api/prescription"
	prescriptionRepository "PharmaPOS/internal/api/prescription/repository"
	"PharmaPOS/internal/entity"
	"PharmaPOS/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPrescriptionService interface {
	CreatePrescription(ctx context.Context, req prescription.CreatePrescriptionRequest) (entity.Prescription, error)
	GetPrescriptionByID(ctx context.Context, id string) (entity.Prescription, error)
	GetPrescriptionsByCustomer(ctx context.Context, customerID string) ([]entity.Prescription, error)
	GetPrescriptionsByStatus(ctx context.Context, status string, limit, offset int) ([]entity.Prescription, error)
	DispensePrescription(ctx context.Context, id string) error
	CancelPrescription(ctx context.Context, id string) error
}

type prescriptionService struct {
	log                    *logrus.Logger
	prescriptionRepository prescriptionRepository.Repository
	catalogService         catalogService.ICatalogService
	utils                  utils.IUtils
}

func NewPrescriptionService(
	log *logrus.Logger,
	pr prescriptionRepository.Repository,
	cs catalogService.ICatalogService,
	utils utils.IUtils,
) IPrescriptionService {
	return &prescriptionService{
		log:                    log,
		prescriptionRepository: pr,
		catalogService:         cs,
		utils:                  utils,
	}
}
