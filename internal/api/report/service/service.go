package reportService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/report"
	reportRepository "PharmaPOS/internal/api/report/repository"
)

type IReportService interface {
	GetProfitReport(ctx context.Context, from, to string, topProducts int) (report.ProfitReportResponse, error)
}

type reportService struct {
	log              *logrus.Logger
	reportRepository reportRepository.Repository
}

func NewReportService(log *logrus.Logger, rr reportRepository.Repository) IReportService {
	return &reportService{
		log:              log,
		reportRepository: rr,
	}
}
