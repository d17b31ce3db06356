package catalogRepository

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
		Product:  &productRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Product interface {
		CreateProduct(c context.Context, product entity.Product) error
		GetProductByID(c context.Context, id string) (entity.Product, error)
		GetProducts(c context.Context, limit, offset int) ([]entity.Product, error)
		SearchProducts(c context.Context, term string, limit int) ([]entity.Product, error)
		UpdateProduct(c context.Context, product entity.Product) error
		DeleteProduct(c context.Context, id string) error
		DecrementStock(c context.Context, id string, quantity int) error
	}

	Commit   func() error
	Rollback func() error
}

type productRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
