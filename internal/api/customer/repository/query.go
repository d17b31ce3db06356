package customerRepository

const (
	queryCreateCustomer = `
		INSERT INTO customers (
			id,
			name,
			phone,
			email,
			address,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:phone,
			:email,
			:address,
			:created_at,
			:updated_at
		)
	`

	queryGetCustomerByID = `
		SELECT
			id,
			name,
			phone,
			email,
			address,
			created_at,
			updated_at
		FROM customers
		WHERE id = :id
	`

	queryGetCustomerByPhone = `
		SELECT
			id,
			name,
			phone,
			email,
			address,
			created_at,
			updated_at
		FROM customers
		WHERE phone = :phone
	`

	queryGetCustomers = `
		SELECT
			id,
			name,
			phone,
			email,
			address,
			created_at,
			updated_at
		FROM customers
		ORDER BY name ASC
		LIMIT :limit OFFSET :offset
	`

	queryUpdateCustomer = `
		UPDATE customers SET
			name = :name,
			phone = :phone,
			email = :email,
			address = :address,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteCustomer = `
		DELETE FROM customers
		WHERE id = :id
	`
)
