package partners

import (
	"strings"
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

// Summary builds one row per configured partner from withdrawals already limited to p.
// Rows stored before a partner was renamed in case still count toward it.
func Summary(partners []string, withdrawals []model.PartnerWithdrawal, p period.Period, now time.Time) model.PartnersOverview {
	amount := func(w model.PartnerWithdrawal) decimal.Decimal { return w.Amount }
	thisMonth := func(w model.PartnerWithdrawal) bool { return period.InMonth(now, w.WithdrawalDate) }

	total := money.Sum(withdrawals, amount)
	rows := make([]model.PartnerSummary, 0, len(partners))
	for _, name := range partners {
		row := model.PartnerSummary{PartnerName: name, TotalWithdrawals: decimal.Zero, ThisMonthWithdrawals: decimal.Zero}
		for _, w := range withdrawals {
			if !strings.EqualFold(w.PartnerName, name) {
				continue
			}
			row.TotalWithdrawals = row.TotalWithdrawals.Add(w.Amount)
			row.WithdrawalCount++
			if w.WithdrawalDate > row.LastWithdrawal {
				row.LastWithdrawal = w.WithdrawalDate
			}
			if thisMonth(w) {
				row.ThisMonthWithdrawals = row.ThisMonthWithdrawals.Add(w.Amount)
			}
		}
		row.Share = money.Percent(row.TotalWithdrawals, total)
		rows = append(rows, row)
	}

	return model.PartnersOverview{
		Period:         string(p),
		Partners:       rows,
		Total:          total,
		ThisMonthTotal: money.SumIf(withdrawals, thisMonth, amount),
	}
}
