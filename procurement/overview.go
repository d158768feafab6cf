package procurement

import (
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

// Overview sums spend, what is still owed to suppliers, and this month's spend.
func Overview(purchases []model.Purchase, now time.Time) model.ProcurementOverview {
	total := func(p model.Purchase) decimal.Decimal { return p.TotalAmount }
	return model.ProcurementOverview{
		TotalSpend:     money.Sum(purchases, total),
		Outstanding:    money.Sum(purchases, func(p model.Purchase) decimal.Decimal { return p.RemainingAmount }),
		ThisMonthSpend: money.SumIf(purchases, func(p model.Purchase) bool { return period.InMonth(now, p.PurchaseDate) }, total),
	}
}
