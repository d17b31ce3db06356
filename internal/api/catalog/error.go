package catalog

import (
	"net/http"

	"PharmaPOS/pkg/response"
)

var (
	ErrProductNotFound      = response.NewError(http.StatusNotFound, "product not found")
	ErrProductAlreadyExists = response.NewError(http.StatusConflict, "product already exists")
	ErrInvalidStock         = response.NewError(http.StatusBadRequest, "stock cannot be negative")
)
