package prescriptionRepository

const (
	queryCreatePrescription = `
		INSERT INTO prescriptions (
			id,
			customer_id,
			doctor_name,
			issued_at,
			status,
			notes,
			created_at,
			updated_at
		) VALUES (
			:id,
			:customer_id,
			:doctor_name,
			:issued_at,
			:status,
			:notes,
			:created_at,
			:updated_at
		)
	`

	queryCreatePrescriptionItem = `
		INSERT INTO prescription_items (
			id,
			prescription_id,
			product_id,
			product_name,
			dosage,
			quantity
		) VALUES (
			:id,
			:prescription_id,
			:product_id,
			:product_name,
			:dosage,
			:quantity
		)
	`

	queryGetPrescriptionByID = `
		SELECT
			id,
			customer_id,
			doctor_name,
			issued_at,
			status,
			notes,
			created_at,
			updated_at
		FROM prescriptions
		WHERE id = :id
	`

	queryGetPrescriptionItems = `
		SELECT
			id,
			prescription_id,
			product_id,
			product_name,
			dosage,
			quantity
		FROM prescription_items
		WHERE prescription_id = :prescription_id
		ORDER BY id ASC
	`

	queryGetPrescriptionsByCustomer = `
		SELECT
			id,
			customer_id,
			doctor_name,
			issued_at,
			status,
			notes,
			created_at,
			updated_at
		FROM prescriptions
		WHERE customer_id = :customer_id
		ORDER BY issued_at DESC
	`

	queryGetPrescriptionsByStatus = `
		SELECT
			id,
			customer_id,
			doctor_name,
			issued_at,
			status,
			notes,
			created_at,
			updated_at
		FROM prescriptions
		WHERE status = :status
		ORDER BY issued_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryUpdatePrescriptionStatus = `
		UPDATE prescriptions SET
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`
)
