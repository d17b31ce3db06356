package reportRepository

const (
	queryGetDailyProfit = `
		SELECT
			to_char(date_trunc('day', s.created_at), 'YYYY-MM-DD') AS date,
			COUNT(DISTINCT s.id) AS sales,
			COALESCE(SUM(i.total), 0) AS revenue,
			COALESCE(SUM(i.purchase_price * i.quantity), 0) AS cost
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		WHERE s.status = 'completed'
		  AND s.created_at >= :from
		  AND s.created_at < :to
		GROUP BY date_trunc('day', s.created_at)
		ORDER BY date_trunc('day', s.created_at) ASC
	`

	queryGetTopProducts = `
		SELECT
			i.product_id,
			i.product_name,
			SUM(i.quantity) AS quantity,
			COALESCE(SUM(i.total), 0) AS revenue
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id
		WHERE s.status = 'completed'
		  AND s.created_at >= :from
		  AND s.created_at < :to
		GROUP BY i.product_id, i.product_name
		ORDER BY revenue DESC
		LIMIT :limit
	`
)
