package posRepository

import (
	"PharmaPOS/internal/api/pos"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SaleDB struct {
	ID            sql.NullString  `db:"id"`
	TerminalID    sql.NullString  `db:"terminal_id"`
	CustomerID    sql.NullString  `db:"customer_id"`
	Subtotal      sql.NullFloat64 `db:"subtotal"`
	Discount      sql.NullFloat64 `db:"discount"`
	Total         sql.NullFloat64 `db:"total"`
	PaymentMethod sql.NullString  `db:"payment_method"`
	AmountPaid    sql.NullFloat64 `db:"amount_paid"`
	Change        sql.NullFloat64 `db:"change"`
	VANumber      sql.NullString  `db:"va_number"`
	Status        sql.NullString  `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type SaleItemDB struct {
	ID            sql.NullString  `db:"id"`
	SaleID        sql.NullString  `db:"sale_id"`
	ProductID     sql.NullString  `db:"product_id"`
	ProductName   sql.NullString  `db:"product_name"`
	Quantity      sql.NullInt64   `db:"quantity"`
	Price         sql.NullFloat64 `db:"price"`
	OriginalPrice sql.NullFloat64 `db:"original_price"`
	PurchasePrice sql.NullFloat64 `db:"purchase_price"`
	Total         sql.NullFloat64 `db:"total"`
}

func (s SaleDB) toEntity() entity.Sale {
	return entity.Sale{
		ID:            s.ID.String,
		TerminalID:    s.TerminalID.String,
		CustomerID:    s.CustomerID.String,
		Subtotal:      s.Subtotal.Float64,
		Discount:      s.Discount.Float64,
		Total:         s.Total.Float64,
		PaymentMethod: s.PaymentMethod.String,
		AmountPaid:    s.AmountPaid.Float64,
		Change:        s.Change.Float64,
		VANumber:      s.VANumber.String,
		Status:        s.Status.String,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (i SaleItemDB) toEntity() entity.SaleItem {
	return entity.SaleItem{
		ID:            i.ID.String,
		SaleID:        i.SaleID.String,
		ProductID:     i.ProductID.String,
		ProductName:   i.ProductName.String,
		Quantity:      int(i.Quantity.Int64),
		Price:         i.Price.Float64,
		OriginalPrice: i.OriginalPrice.Float64,
		PurchasePrice: i.PurchasePrice.Float64,
		Total:         i.Total.Float64,
	}
}

func (r *saleRepository) CreateSale(c context.Context, sale entity.Sale) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":             sale.ID,
		"terminal_id":    sale.TerminalID,
		"customer_id":    sale.CustomerID,
		"subtotal":       sale.Subtotal,
		"discount":       sale.Discount,
		"total":          sale.Total,
		"payment_method": sale.PaymentMethod,
		"amount_paid":    sale.AmountPaid,
		"change":         sale.Change,
		"va_number":      sale.VANumber,
		"status":         sale.Status,
		"created_at":     time.Now(),
		"updated_at":     time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateSale, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateSale")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating sale")
		return err
	}

	for _, item := range sale.Items {
		itemArgs := map[string]interface{}{
			"id":             item.ID,
			"sale_id":        sale.ID,
			"product_id":     item.ProductID,
			"product_name":   item.ProductName,
			"quantity":       item.Quantity,
			"price":          item.Price,
			"original_price": item.OriginalPrice,
			"purchase_price": item.PurchasePrice,
			"total":          item.Total,
		}

		query, args, err := sqlx.Named(queryCreateSaleItem, itemArgs)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to build SQL query for sale item")
			return err
		}
		query = r.q.Rebind(query)

		if _, err := r.q.ExecContext(c, query, args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Database error when creating sale item")
			return err
		}
	}

	return nil
}

func (r *saleRepository) GetSaleByID(c context.Context, id string) (entity.Sale, error) {
	requestID := contextPkg.GetRequestID(c)
	var row SaleDB

	query, args, err := sqlx.Named(queryGetSaleByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSaleByID named query preparation err")
		return entity.Sale{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Sale{}, pos.ErrSaleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting sale by ID")
		return entity.Sale{}, err
	}

	sale := row.toEntity()

	var itemRows []SaleItemDB
	query, args, err = sqlx.Named(queryGetSaleItems, map[string]interface{}{"sale_id": id})
	if err != nil {
		return entity.Sale{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &itemRows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting sale items")
		return entity.Sale{}, err
	}

	sale.Items = make([]entity.SaleItem, 0, len(itemRows))
	for _, itemRow := range itemRows {
		sale.Items = append(sale.Items, itemRow.toEntity())
	}

	return sale, nil
}

func (r *saleRepository) GetSalesByDateRange(c context.Context, from, to string) ([]entity.Sale, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []SaleDB

	query, args, err := sqlx.Named(queryGetSalesByDateRange, map[string]interface{}{
		"from": from,
		"to":   to,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSalesByDateRange named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting sales by date range")
		return nil, err
	}

	sales := make([]entity.Sale, 0, len(rows))
	for _, row := range rows {
		sale := row.toEntity()

		var itemRows []SaleItemDB
		query, args, err := sqlx.Named(queryGetSaleItems, map[string]interface{}{"sale_id": sale.ID})
		if err != nil {
			return nil, err
		}
		query = r.q.Rebind(query)

		if err := r.q.SelectContext(c, &itemRows, query, args...); err != nil {
			return nil, err
		}
		for _, itemRow := range itemRows {
			sale.Items = append(sale.Items, itemRow.toEntity())
		}

		sales = append(sales, sale)
	}

	return sales, nil
}

func (r *saleRepository) UpdateSaleStatus(c context.Context, id string, status string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"status":     status,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateSaleStatus, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSaleStatus named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when updating sale status")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return pos.ErrSaleNotFound
	}

	return nil
}

func (r *stockRepository) DecrementStock(c context.Context, productID string, quantity int) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         productID,
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
			"product_id": productID,
			"error":      err.Error(),
		}).Error("Database error when decrementing stock")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return pos.ErrInsufficientStock
	}

	return nil
}
