package reportService

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/report"
	reportRepository "PharmaPOS/internal/api/report/repository"
	"PharmaPOS/internal/entity"
)

type fakeReportRepo struct {
	days []entity.DailyProfit
	top  []entity.ProductSales

	gotFrom string
	gotTo   string
}

func (f *fakeReportRepo) NewClient(bool) (reportRepository.Client, error) {
	return reportRepository.Client{
		Report:   f,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func (f *fakeReportRepo) GetDailyProfit(_ context.Context, from, to string) ([]entity.DailyProfit, error) {
	f.gotFrom, f.gotTo = from, to
	return f.days, nil
}

func (f *fakeReportRepo) GetTopProducts(_ context.Context, _, _ string, limit int) ([]entity.ProductSales, error) {
	if limit < len(f.top) {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func newTestService(repo *fakeReportRepo) IReportService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewReportService(log, repo)
}

func TestGetProfitReportComputesMargins(t *testing.T) {
	repo := &fakeReportRepo{
		days: []entity.DailyProfit{
			{Date: "2026-01-01", Sales: 2, Revenue: 100, Cost: 60},
			{Date: "2026-01-02", Sales: 1, Revenue: 50, Cost: 45},
		},
	}
	svc := newTestService(repo)

	result, err := svc.GetProfitReport(context.Background(), "2026-01-01", "2026-01-02", 5)
	if err != nil {
		t.Fatalf("GetProfitReport: %v", err)
	}

	if result.Days[0].Profit != 40 || result.Days[0].Margin != 40 {
		t.Fatalf("unexpected first day: %+v", result.Days[0])
	}
	if result.Days[1].Profit != 5 || result.Days[1].Margin != 10 {
		t.Fatalf("unexpected second day: %+v", result.Days[1])
	}
	if result.Totals.Sales != 3 || result.Totals.Revenue != 150 || result.Totals.Profit != 45 {
		t.Fatalf("unexpected totals: %+v", result.Totals)
	}
	if result.Totals.Margin != 30 {
		t.Fatalf("expected 30%% total margin, got %v", result.Totals.Margin)
	}
}

func TestGetProfitReportUpperBoundIsInclusive(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newTestService(repo)

	if _, err := svc.GetProfitReport(context.Background(), "2026-01-01", "2026-01-31", 5); err != nil {
		t.Fatalf("GetProfitReport: %v", err)
	}
	if repo.gotTo != "2026-02-01" {
		t.Fatalf("expected exclusive upper bound 2026-02-01, got %s", repo.gotTo)
	}
}

func TestGetProfitReportRejectsBadRanges(t *testing.T) {
	svc := newTestService(&fakeReportRepo{})

	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "reversed range", from: "2026-02-01", to: "2026-01-01"},
		{name: "bad from", from: "yesterday", to: "2026-01-01"},
		{name: "bad to", from: "2026-01-01", to: "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetProfitReport(context.Background(), tt.from, tt.to, 5)
			if !errors.Is(err, report.ErrInvalidDateRange) {
				t.Fatalf("expected ErrInvalidDateRange, got %v", err)
			}
		})
	}
}

func TestGetProfitReportZeroRevenueMargin(t *testing.T) {
	repo := &fakeReportRepo{
		days: []entity.DailyProfit{{Date: "2026-01-01", Sales: 0, Revenue: 0, Cost: 0}},
	}
	svc := newTestService(repo)

	result, err := svc.GetProfitReport(context.Background(), "2026-01-01", "2026-01-01", 5)
	if err != nil {
		t.Fatalf("GetProfitReport: %v", err)
	}
	if result.Days[0].Margin != 0 || result.Totals.Margin != 0 {
		t.Fatalf("expected zero margins, got %+v", result)
	}
}
