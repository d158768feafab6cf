package b2csales

import (
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

// Overview sums retail sales overall, today and this month, and lists every product with
// what it has sold.
func Overview(products []model.Product, sales []model.B2CSale, now time.Time) model.B2COverview {
	total := func(s model.B2CSale) decimal.Decimal { return s.TotalAmount }
	today := period.Today(now)

	byProduct := make(map[string]*model.ProductSales, len(products))
	stats := make([]model.ProductSales, len(products))
	for i, p := range products {
		stats[i] = model.ProductSales{Product: p, TotalSold: decimal.Zero, Revenue: decimal.Zero}
		byProduct[p.ID] = &stats[i]
	}
	for _, s := range sales {
		ps, ok := byProduct[s.ProductID]
		if !ok {
			continue
		}
		ps.TotalSold = ps.TotalSold.Add(s.Quantity)
		ps.Revenue = ps.Revenue.Add(s.TotalAmount)
		ps.SalesCount++
	}

	return model.B2COverview{
		TotalRevenue:      money.Sum(sales, total),
		TodaysSales:       money.SumIf(sales, func(s model.B2CSale) bool { return s.SaleDate == today }, total),
		ThisMonthSales:    money.SumIf(sales, func(s model.B2CSale) bool { return period.InMonth(now, s.SaleDate) }, total),
		TotalQuantitySold: money.Sum(sales, func(s model.B2CSale) decimal.Decimal { return s.Quantity }),
		Products:          stats,
	}
}
