package reportRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
)

type DailyProfitDB struct {
	Date    string  `db:"date"`
	Sales   int     `db:"sales"`
	Revenue float64 `db:"revenue"`
	Cost    float64 `db:"cost"`
}

func (d DailyProfitDB) toEntity() entity.DailyProfit {
	return entity.DailyProfit{
		Date:    d.Date,
		Sales:   d.Sales,
		Revenue: d.Revenue,
		Cost:    d.Cost,
	}
}

type ProductSalesDB struct {
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	Revenue     float64 `db:"revenue"`
}

func (p ProductSalesDB) toEntity() entity.ProductSales {
	return entity.ProductSales{
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		Revenue:     p.Revenue,
	}
}

func (r *reportRepository) GetDailyProfit(c context.Context, from, to string) ([]entity.DailyProfit, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []DailyProfitDB

	query, args, err := sqlx.Named(queryGetDailyProfit, map[string]interface{}{
		"from": from,
		"to":   to,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDailyProfit named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting daily profit")
		return nil, err
	}

	days := make([]entity.DailyProfit, 0, len(rows))
	for _, row := range rows {
		days = append(days, row.toEntity())
	}
	return days, nil
}

func (r *reportRepository) GetTopProducts(c context.Context, from, to string, limit int) ([]entity.ProductSales, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ProductSalesDB

	query, args, err := sqlx.Named(queryGetTopProducts, map[string]interface{}{
		"from":  from,
		"to":    to,
		"limit": limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTopProducts named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting top products")
		return nil, err
	}

	products := make([]entity.ProductSales, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toEntity())
	}
	return products, nil
}
