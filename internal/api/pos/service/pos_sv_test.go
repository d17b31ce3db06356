package posService

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/api/pos"
	posRepository "PharmaPOS/internal/api/pos/repository"
	"PharmaPOS/internal/entity"
)

type fakeSaleRepo struct {
	sales []entity.Sale

	gotFrom string
	gotTo   string
	calls   int
}

func (f *fakeSaleRepo) NewClient(bool) (posRepository.Client, error) {
	return posRepository.Client{
		Sale:     f,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func (f *fakeSaleRepo) CreateSale(_ context.Context, _ entity.Sale) error { return nil }

func (f *fakeSaleRepo) GetSaleByID(_ context.Context, id string) (entity.Sale, error) {
	for _, sale := range f.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return entity.Sale{}, pos.ErrSaleNotFound
}

func (f *fakeSaleRepo) GetSalesByDateRange(_ context.Context, from, to string) ([]entity.Sale, error) {
	f.calls++
	f.gotFrom, f.gotTo = from, to
	return f.sales, nil
}

func (f *fakeSaleRepo) UpdateSaleStatus(_ context.Context, _ string, _ string) error { return nil }

func newSalesTestService(repo *fakeSaleRepo) IPosService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewPosService(log, repo, nil, nil, nil, nil, nil, nil)
}

func TestGetSalesInclusiveUpperBound(t *testing.T) {
	repo := &fakeSaleRepo{sales: []entity.Sale{
		{ID: "s1", Total: 25, Status: entity.SaleStatusCompleted, CreatedAt: time.Now()},
	}}
	svc := newSalesTestService(repo)

	sales, err := svc.GetSales(context.Background(), "2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("get sales: %v", err)
	}
	if len(sales) != 1 || sales[0].ID != "s1" {
		t.Fatalf("sales = %+v", sales)
	}
	// The last day of the range is included by pushing the query bound
	// to the next midnight.
	if repo.gotFrom != "2026-01-01" || repo.gotTo != "2026-02-01" {
		t.Fatalf("query bounds = %q / %q", repo.gotFrom, repo.gotTo)
	}
}

func TestGetSalesRejectsBadRanges(t *testing.T) {
	repo := &fakeSaleRepo{}
	svc := newSalesTestService(repo)

	cases := []struct {
		name string
		from string
		to   string
	}{
		{"from after to", "2026-02-01", "2026-01-01"},
		{"bad from", "yesterday", "2026-01-01"},
		{"bad to", "2026-01-01", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.GetSales(context.Background(), tc.from, tc.to); !errors.Is(err, pos.ErrInvalidDateRange) {
				t.Fatalf("err = %v, want ErrInvalidDateRange", err)
			}
		})
	}
	if repo.calls != 0 {
		t.Fatalf("repository queried %d times for invalid ranges", repo.calls)
	}
}
