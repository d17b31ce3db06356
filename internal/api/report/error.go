package report

import (
	"PharmaPOS/pkg/response"
	"net/http"
)

var (
	ErrInvalidDateRange = response.NewError(http.StatusBadRequest, "invalid date range")
)
