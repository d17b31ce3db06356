package catalogRepository

const (
	queryCreateProduct = `
		INSERT INTO products (
			id,
			name,
			description,
			category,
			price,
			purchase_price,
			stock,
			unit,
			requires_rx,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:description,
			:category,
			:price,
			:purchase_price,
			:stock,
			:unit,
			:requires_rx,
			:created_at,
			:updated_at
		)
	`

	queryGetProductByID = `
		SELECT
			id,
			name,
			description,
			category,
			price,
			purchase_price,
			stock,
			unit,
			requires_rx,
			created_at,
			updated_at
		FROM products
		WHERE id = :id
	`

	queryGetProducts = `
		SELECT
			id,
			name,
			description,
			category,
			price,
			purchase_price,
			stock,
			unit,
			requires_rx,
			created_at,
			updated_at
		FROM products
		ORDER BY name ASC
		LIMIT :limit OFFSET :offset
	`

	querySearchProducts = `
		SELECT
			id,
			name,
			description,
			category,
			price,
			purchase_price,
			stock,
			unit,
			requires_rx,
			created_at,
			updated_at
		FROM products
		WHERE name ILIKE :term OR category ILIKE :term
		ORDER BY
			CASE WHEN name ILIKE :prefix THEN 0 ELSE 1 END,
			name ASC
		LIMIT :limit
	`

	queryUpdateProduct = `
		UPDATE products SET
			name = :name,
			description = :description,
			category = :category,
			price = :price,
			purchase_price = :purchase_price,
			stock = :stock,
			unit = :unit,
			requires_rx = :requires_rx,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteProduct = `
		DELETE FROM products
		WHERE id = :id
	`

	queryDecrementStock = `
		UPDATE products SET
			stock = stock - :quantity,
			updated_at = :updated_at
		WHERE id = :id AND stock >= :quantity
	`
)
