package prescription

type CreatePrescriptionRequest struct {
	CustomerID string                  `json:"customer_id" validate:"required"`
	DoctorName string                  `json:"doctor_name" validate:"required,min=2,max=200"`
	IssuedAt   string                  `json:"issued_at" validate:"required"`
	Notes      string                  `json:"notes" validate:"max=1000"`
	Items      []PrescriptionItemInput `json:"items" validate:"required,min=1,dive"`
}

type PrescriptionItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Dosage    string `json:"dosage" validate:"max=200"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type PrescriptionResponse struct {
	ID         string                     `json:"id"`
	CustomerID string                     `json:"customer_id"`
	DoctorName string                     `json:"doctor_name"`
	IssuedAt   string                     `json:"issued_at"`
	Status     string                     `json:"status"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []PrescriptionItemResponse `json:"items"`
	CreatedAt  string                     `json:"created_at"`
}

type PrescriptionItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Dosage      string `json:"dosage,omitempty"`
	Quantity    int    `json:"quantity"`
}
