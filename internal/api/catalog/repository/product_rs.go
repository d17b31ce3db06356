package catalogRepository

import (
	"PharmaPOS/internal/api/catalog"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ProductDB struct {
	ID            sql.NullString  `db:"id"`
	Name          sql.NullString  `db:"name"`
	Description   sql.NullString  `db:"description"`
	Category      sql.NullString  `db:"category"`
	Price         sql.NullFloat64 `db:"price"`
	PurchasePrice sql.NullFloat64 `db:"purchase_price"`
	Stock         sql.NullInt64   `db:"stock"`
	Unit          sql.NullString  `db:"unit"`
	RequiresRx    sql.NullBool    `db:"requires_rx"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (p ProductDB) toEntity() entity.Product {
	return entity.Product{
		ID:            p.ID.String,
		Name:          p.Name.String,
		Description:   p.Description.String,
		Category:      p.Category.String,
		Price:         p.Price.Float64,
		PurchasePrice: p.PurchasePrice.Float64,
		Stock:         int(p.Stock.Int64),
		Unit:          p.Unit.String,
		RequiresRx:    p.RequiresRx.Bool,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r *productRepository) CreateProduct(c context.Context, product entity.Product) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":             product.ID,
		"name":           product.Name,
		"description":    product.Description,
		"category":       product.Category,
		"price":          product.Price,
		"purchase_price": product.PurchasePrice,
		"stock":          product.Stock,
		"unit":           product.Unit,
		"requires_rx":    product.RequiresRx,
		"created_at":     time.Now(),
		"updated_at":     time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateProduct, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateProduct")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating product")
		return err
	}

	return nil
}

func (r *productRepository) GetProductByID(c context.Context, id string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(c)
	var product ProductDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetProductByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID named query preparation err")
		return entity.Product{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Product{}, catalog.ErrProductNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting product by ID")
		return entity.Product{}, err
	}

	return product.toEntity(), nil
}

func (r *productRepository) GetProducts(c context.Context, limit, offset int) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ProductDB

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetProducts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProducts named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing products")
		return nil, err
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toEntity())
	}

	return products, nil
}

func (r *productRepository) SearchProducts(c context.Context, term string, limit int) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ProductDB

	argsKV := map[string]interface{}{
		"term":   "%" + term + "%",
		"prefix": term + "%",
		"limit":  limit,
	}

	query, args, err := sqlx.Named(querySearchProducts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchProducts named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"term":       term,
			"error":      err.Error(),
		}).Error("Database error when searching products")
		return nil, err
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toEntity())
	}

	return products, nil
}

func (r *productRepository) UpdateProduct(c context.Context, product entity.Product) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":             product.ID,
		"name":           product.Name,
		"description":    product.Description,
		"category":       product.Category,
		"price":          product.Price,
		"purchase_price": product.PurchasePrice,
		"stock":          product.Stock,
		"unit":           product.Unit,
		"requires_rx":    product.RequiresRx,
		"updated_at":     time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateProduct, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateProduct named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating product")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) DeleteProduct(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteProduct, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteProduct named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting product")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return catalog.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) DecrementStock(c context.Context, id string, quantity int) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"quantity":   quantity,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryDecrementStock, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DecrementStock named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when decrementing stock")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return catalog.ErrInvalidStock
	}

	return nil
}
