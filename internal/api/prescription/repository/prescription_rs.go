package prescriptionRepository

import (
	"PharmaPOS/internal/api/prescription"
	"PharmaPOS/internal/entity"
	contextPkg "PharmaPOS/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type PrescriptionDB struct {
	ID         sql.NullString `db:"id"`
	CustomerID sql.NullString `db:"customer_id"`
	DoctorName sql.NullString `db:"doctor_name"`
	IssuedAt   time.Time      `db:"issued_at"`
	Status     sql.NullString `db:"status"`
	Notes      sql.NullString `db:"notes"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type PrescriptionItemDB struct {
	ID             sql.NullString `db:"id"`
	PrescriptionID sql.NullString `db:"prescription_id"`
	ProductID      sql.NullString `db:"product_id"`
	ProductName    sql.NullString `db:"product_name"`
	Dosage         sql.NullString `db:"dosage"`
	Quantity       sql.NullInt64  `db:"quantity"`
}

func (p PrescriptionDB) toEntity() entity.Prescription {
	return entity.Prescription{
		ID:         p.ID.String,
		CustomerID: p.CustomerID.String,
		DoctorName: p.DoctorName.String,
		IssuedAt:   p.IssuedAt,
		Status:     p.Status.String,
		Notes:      p.Notes.String,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (i PrescriptionItemDB) toEntity() entity.PrescriptionItem {
	return entity.PrescriptionItem{
		ID:             i.ID.String,
		PrescriptionID: i.PrescriptionID.String,
		ProductID:      i.ProductID.String,
		ProductName:    i.ProductName.String,
		Dosage:         i.Dosage.String,
		Quantity:       int(i.Quantity.Int64),
	}
}

func (r *prescriptionRepository) CreatePrescription(c context.Context, p entity.Prescription) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          p.ID,
		"customer_id": p.CustomerID,
		"doctor_name": p.DoctorName,
		"issued_at":   p.IssuedAt,
		"status":      p.Status,
		"notes":       p.Notes,
		"created_at":  time.Now(),
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryCreatePrescription, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePrescription")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating prescription")
		return err
	}

	for _, item := range p.Items {
		itemArgs := map[string]interface{}{
			"id":              item.ID,
			"prescription_id": p.ID,
			"product_id":      item.ProductID,
			"product_name":    item.ProductName,
			"dosage":          item.Dosage,
			"quantity":        item.Quantity,
		}

		query, args, err := sqlx.Named(queryCreatePrescriptionItem, itemArgs)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to build SQL query for prescription item")
			return err
		}
		query = r.q.Rebind(query)

		if _, err := r.q.ExecContext(c, query, args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Database error when creating prescription item")
			return err
		}
	}

	return nil
}

func (r *prescriptionRepository) GetPrescriptionByID(c context.Context, id string) (entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(c)
	var row PrescriptionDB

	query, args, err := sqlx.Named(queryGetPrescriptionByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPrescriptionByID named query preparation err")
		return entity.Prescription{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Prescription{}, prescription.ErrPrescriptionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when getting prescription by ID")
		return entity.Prescription{}, err
	}

	result := row.toEntity()

	items, err := r.getItems(c, id)
	if err != nil {
		return entity.Prescription{}, err
	}
	result.Items = items

	return result, nil
}

func (r *prescriptionRepository) getItems(c context.Context, prescriptionID string) ([]entity.PrescriptionItem, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []PrescriptionItemDB

	query, args, err := sqlx.Named(queryGetPrescriptionItems, map[string]interface{}{
		"prescription_id": prescriptionID,
	})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting prescription items")
		return nil, err
	}

	items := make([]entity.PrescriptionItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}

	return items, nil
}

func (r *prescriptionRepository) GetPrescriptionsByCustomer(c context.Context, customerID string) ([]entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []PrescriptionDB

	query, args, err := sqlx.Named(queryGetPrescriptionsByCustomer, map[string]interface{}{
		"customer_id": customerID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPrescriptionsByCustomer named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting prescriptions by customer")
		return nil, err
	}

	prescriptions := make([]entity.Prescription, 0, len(rows))
	for _, row := range rows {
		p := row.toEntity()
		items, err := r.getItems(c, p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
		prescriptions = append(prescriptions, p)
	}

	return prescriptions, nil
}

func (r *prescriptionRepository) GetPrescriptionsByStatus(c context.Context, status string, limit, offset int) ([]entity.Prescription, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []PrescriptionDB

	query, args, err := sqlx.Named(queryGetPrescriptionsByStatus, map[string]interface{}{
		"status": status,
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPrescriptionsByStatus named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		}).Error("Database error when getting prescriptions by status")
		return nil, err
	}

	prescriptions := make([]entity.Prescription, 0, len(rows))
	for _, row := range rows {
		p := row.toEntity()
		items, err := r.getItems(c, p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
		prescriptions = append(prescriptions, p)
	}

	return prescriptions, nil
}

func (r *prescriptionRepository) UpdatePrescriptionStatus(c context.Context, id string, status string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"status":     status,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdatePrescriptionStatus, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePrescriptionStatus named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Database error when updating prescription status")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return prescription.ErrPrescriptionNotFound
	}

	return nil
}
