package report

import "PharmaPOS/internal/entity"

type ProfitReportResponse struct {
	From        string                `json:"from"`
	To          string                `json:"to"`
	Days        []entity.DailyProfit  `json:"days"`
	Totals      entity.ProfitTotals   `json:"totals"`
	TopProducts []entity.ProductSales `json:"top_products"`
}
