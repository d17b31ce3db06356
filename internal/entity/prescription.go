package entity

import (
	"time"
)

type Prescription struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	DoctorName string             `json:"doctor_name"`
	IssuedAt   time.Time          `json:"issued_at"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes"`
	Items      []PrescriptionItem `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type PrescriptionItem struct {
	ID             string `json:"id"`
	PrescriptionID string `json:"prescription_id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Dosage         string `json:"dosage"`
	Quantity       int    `json:"quantity"`
}

const (
	PrescriptionStatusPending   = "pending"
	PrescriptionStatusDispensed = "dispensed"
	PrescriptionStatusCancelled = "cancelled"
)
