package b2bsales

import (
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

// Overview counts revenue on a cash basis, sums what customers still owe, and builds a row
// per party. A party exceeds its credit when it has a limit and owes more than it.
func Overview(parties []model.B2BParty, sales []model.B2BSale, now time.Time) model.B2BOverview {
	byParty := make(map[string]*model.PartyStats, len(parties))
	stats := make([]model.PartyStats, len(parties))
	for i, p := range parties {
		stats[i] = model.PartyStats{B2BParty: p, TotalSales: decimal.Zero, Outstanding: decimal.Zero}
		byParty[p.ID] = &stats[i]
	}
	for _, s := range sales {
		ps, ok := byParty[s.PartyID]
		if !ok {
			continue
		}
		ps.TotalSales = ps.TotalSales.Add(s.TotalAmount)
		ps.Outstanding = ps.Outstanding.Add(s.RemainingAmount)
		ps.SaleCount++
	}
	for i := range stats {
		ps := &stats[i]
		ps.CreditExceeded = ps.CreditLimit.IsPositive() && ps.Outstanding.GreaterThan(ps.CreditLimit)
	}

	return model.B2BOverview{
		TotalRevenue:  money.Sum(sales, func(s model.B2BSale) decimal.Decimal { return s.AmountPaid }),
		PendingAmount: money.Sum(sales, func(s model.B2BSale) decimal.Decimal { return s.RemainingAmount }),
		ThisMonthSales: money.SumIf(sales,
			func(s model.B2BSale) bool { return period.InMonth(now, s.SaleDate) },
			func(s model.B2BSale) decimal.Decimal { return s.TotalAmount }),
		Parties: stats,
	}
}
