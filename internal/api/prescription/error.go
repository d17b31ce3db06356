package prescription

import (
	"net/http"

	"PharmaPOS/pkg/response"
)

var (
	ErrPrescriptionNotFound  = response.NewError(http.StatusNotFound, "prescription not found")
	ErrAlreadyDispensed      = response.NewError(http.StatusConflict, "prescription already dispensed")
	ErrPrescriptionCancelled = response.NewError(http.StatusConflict, "prescription is cancelled")
	ErrEmptyPrescription     = response.NewError(http.StatusBadRequest, "prescription has no items")
)
