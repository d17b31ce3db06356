package customerRepository

import (
	"PharmaPOS/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Customer: &customerRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Customer interface {
		CreateCustomer(c context.Context, customer entity.Customer) error
		GetCustomerByID(c context.Context, id string) (entity.Customer, error)
		GetCustomerByPhone(c context.Context, phone string) (entity.Customer, error)
		GetCustomers(c context.Context, limit, offset int) ([]entity.Customer, error)
		UpdateCustomer(c context.Context, customer entity.Customer) error
		DeleteCustomer(c context.Context, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type customerRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
