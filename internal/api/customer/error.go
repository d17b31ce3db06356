package customer

import (
	"net/http"

	"PharmaPOS/pkg/response"
)

var (
	ErrCustomerNotFound   = response.NewError(http.StatusNotFound, "customer not found")
	ErrPhoneAlreadyExists = response.NewError(http.StatusConflict, "phone number already registered")
)
