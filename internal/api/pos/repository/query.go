package posRepository

const (
	queryCreateSale = `
		INSERT INTO sales (
			id,
			terminal_id,
			customer_id,
			subtotal,
			discount,
			total,
			payment_method,
			amount_paid,
			change,
			va_number,
			status,
			created_at,
			updated_at
		) VALUES (
			:id,
			:terminal_id,
			:customer_id,
			:subtotal,
			:discount,
			:total,
			:payment_method,
			:amount_paid,
			:change,
			:va_number,
			:status,
			:created_at,
			:updated_at
		)
	`

	queryCreateSaleItem = `
		INSERT INTO sale_items (
			id,
			sale_id,
			product_id,
			product_name,
			quantity,
			price,
			original_price,
			purchase_price,
			total
		) VALUES (
			:id,
			:sale_id,
			:product_id,
			:product_name,
			:quantity,
			:price,
			:original_price,
			:purchase_price,
			:total
		)
	`

	queryGetSaleByID = `
		SELECT
			id,
			terminal_id,
			customer_id,
			subtotal,
			discount,
			total,
			payment_method,
			amount_paid,
			change,
			va_number,
			status,
			created_at,
			updated_at
		FROM sales
		WHERE id = :id
	`

	queryGetSaleItems = `
		SELECT
			id,
			sale_id,
			product_id,
			product_name,
			quantity,
			price,
			original_price,
			purchase_price,
			total
		FROM sale_items
		WHERE sale_id = :sale_id
		ORDER BY id ASC
	`

	queryGetSalesByDateRange = `
		SELECT
			id,
			terminal_id,
			customer_id,
			subtotal,
			discount,
			total,
			payment_method,
			amount_paid,
			change,
			va_number,
			status,
			created_at,
			updated_at
		FROM sales
		WHERE created_at >= :from AND created_at < :to
		ORDER BY created_at ASC
	`

	queryUpdateSaleStatus = `
		UPDATE sales SET
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDecrementStock = `
		UPDATE products SET
			stock = stock - :quantity,
			updated_at = :updated_at
		WHERE id = :id AND stock >= :quantity
	`
)
