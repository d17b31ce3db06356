package customerRepository

import (
	"PharmaPOS/internal/api/customer"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CustomerDB struct {
	ID        sql.NullString `db:"id"`
	Name      sql.NullString `db:"name"`
	Phone     sql.NullString `db:"phone"`
	Email     sql.NullString `db:"email"`
	Address   sql.NullString `db:"address"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (c CustomerDB) toEntity() entity.Customer {
	return entity.Customer{
		ID:        c.ID.String,
		Name:      c.Name.String,
		Phone:     c.Phone.String,
		Email:     c.Email.String,
		Address:   c.Address.String,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *customerRepository) CreateCustomer(c context.Context, cust entity.Customer) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         cust.ID,
		"name":       cust.Name,
		"phone":      cust.Phone,
		"email":      cust.Email,
		"address":    cust.Address,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateCustomer, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCustomer")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating customer")
		return err
	}

	return nil
}

func (r *customerRepository) GetCustomerByID(c context.Context, id string) (entity.Customer, error) {
	requestID := contextPkg.GetRequestID(c)
	var cust CustomerDB

	query, args, err := sqlx.Named(queryGetCustomerByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCustomerByID named query preparation err")
		return entity.Customer{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&cust); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Customer{}, customer.ErrCustomerNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting customer by ID")
		return entity.Customer{}, err
	}

	return cust.toEntity(), nil
}

func (r *customerRepository) GetCustomerByPhone(c context.Context, phone string) (entity.Customer, error) {
	requestID := contextPkg.GetRequestID(c)
	var cust CustomerDB

	query, args, err := sqlx.Named(queryGetCustomerByPhone, map[string]interface{}{"phone": phone})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCustomerByPhone named query preparation err")
		return entity.Customer{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&cust); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Customer{}, customer.ErrCustomerNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting customer by phone")
		return entity.Customer{}, err
	}

	return cust.toEntity(), nil
}

func (r *customerRepository) GetCustomers(c context.Context, limit, offset int) ([]entity.Customer, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []CustomerDB

	query, args, err := sqlx.Named(queryGetCustomers, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCustomers named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing customers")
		return nil, err
	}

	customers := make([]entity.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toEntity())
	}

	return customers, nil
}

func (r *customerRepository) UpdateCustomer(c context.Context, cust entity.Customer) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         cust.ID,
		"name":       cust.Name,
		"phone":      cust.Phone,
		"email":      cust.Email,
		"address":    cust.Address,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateCustomer, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCustomer named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating customer")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) DeleteCustomer(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteCustomer, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCustomer named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting customer")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}
