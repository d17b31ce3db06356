package reportService

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/report"
	contextPkg "PharmaPOS/pkg/context"
)

const (
	dateLayout         = "2006-01-02"
	defaultTopProducts = 5
)

// GetProfitReport aggregates completed sales in [from, to]. Both bounds
// are calendar dates; the upper bound is inclusive.
func (s *reportService) GetProfitReport(ctx context.Context, from, to string, topProducts int) (report.ProfitReportResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return report.ProfitReportResponse{}, report.ErrInvalidDateRange
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return report.ProfitReportResponse{}, report.ErrInvalidDateRange
	}
	if fromDate.After(toDate) {
		return report.ProfitReportResponse{}, report.ErrInvalidDateRange
	}
	if topProducts < 1 {
		topProducts = defaultTopProducts
	}

	repo, err := s.reportRepository.NewClient(false)
	if err != nil {
		return report.ProfitReportResponse{}, err
	}

	upper := toDate.AddDate(0, 0, 1).Format(dateLayout)

	days, err := repo.Report.GetDailyProfit(ctx, from, upper)
	if err != nil {
		return report.ProfitReportResponse{}, err
	}

	top, err := repo.Report.GetTopProducts(ctx, from, upper, topProducts)
	if err != nil {
		return report.ProfitReportResponse{}, err
	}

	result := report.ProfitReportResponse{
		From:        from,
		To:          to,
		TopProducts: top,
	}

	for _, day := range days {
		day.Profit = roundMoney(day.Revenue - day.Cost)
		day.Margin = marginOf(day.Revenue, day.Profit)
		result.Days = append(result.Days, day)

		result.Totals.Sales += day.Sales
		result.Totals.Revenue = roundMoney(result.Totals.Revenue + day.Revenue)
		result.Totals.Cost = roundMoney(result.Totals.Cost + day.Cost)
	}
	result.Totals.Profit = roundMoney(result.Totals.Revenue - result.Totals.Cost)
	result.Totals.Margin = marginOf(result.Totals.Revenue, result.Totals.Profit)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"from":       from,
		"to":         to,
		"days":       len(result.Days),
	}).Debug("Profit report generated")

	return result, nil
}

func marginOf(revenue, profit float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return roundMoney(profit / revenue * 100)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
