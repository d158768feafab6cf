// Package finance reduces the sales and expense ledgers to the dashboard and the
// financial report.
package finance

import (
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

func b2bPaid(r model.B2BLedgerRow) decimal.Decimal      { return r.AmountPaid }
func b2bTotal(r model.B2BLedgerRow) decimal.Decimal     { return r.TotalAmount }
func b2bRemaining(r model.B2BLedgerRow) decimal.Decimal { return r.RemainingAmount }
func amount(r model.AmountRow) decimal.Decimal          { return r.Amount }

// totals sums one ledger, restricted to the dates keep accepts.
type totals struct {
	B2B, B2C, Purchases, Trucks, Maintenance decimal.Decimal
}

func sumLedger(l model.Ledger, keep func(date string) bool) totals {
	return totals{
		B2B:         money.SumIf(l.B2B, func(r model.B2BLedgerRow) bool { return keep(r.Date) }, b2bPaid),
		B2C:         money.SumIf(l.B2C, func(r model.AmountRow) bool { return keep(r.Date) }, amount),
		Purchases:   money.SumIf(l.Purchases, func(r model.AmountRow) bool { return keep(r.Date) }, amount),
		Trucks:      money.SumIf(l.Trucks, func(r model.AmountRow) bool { return keep(r.Date) }, amount),
		Maintenance: money.SumIf(l.Maintenance, func(r model.AmountRow) bool { return keep(r.Date) }, amount),
	}
}

// Revenue counts B2B sales on a cash basis (what has been paid) plus B2C totals.
func (t totals) Revenue() decimal.Decimal {
	return t.B2B.Add(t.B2C)
}

func (t totals) Expenses() decimal.Decimal {
	return t.Purchases.Add(t.Trucks).Add(t.Maintenance)
}

func everyDate(string) bool { return true }

func keepSince[T any](rows []T, since string, date func(T) string) []T {
	var kept []T
	for _, r := range rows {
		if period.Includes(since, date(r)) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Filter restricts every source of l to rows dated on or after since.
func Filter(l model.Ledger, since string) model.Ledger {
	if since == "" {
		return l
	}
	amountDate := func(r model.AmountRow) string { return r.Date }
	return model.Ledger{
		B2B:         keepSince(l.B2B, since, func(r model.B2BLedgerRow) string { return r.Date }),
		B2C:         keepSince(l.B2C, since, amountDate),
		Purchases:   keepSince(l.Purchases, since, amountDate),
		Trucks:      keepSince(l.Trucks, since, amountDate),
		Maintenance: keepSince(l.Maintenance, since, amountDate),
	}
}

// Monthly builds the revenue/expense/profit series for the last n calendar months.
func Monthly(l model.Ledger, now time.Time, n int) []model.MonthlyData {
	windows := period.LastMonths(now, n)
	out := make([]model.MonthlyData, 0, len(windows))
	for _, w := range windows {
		t := sumLedger(l, w.Contains)
		out = append(out, model.MonthlyData{
			Month:    w.Label,
			Start:    w.Start,
			End:      w.End,
			Revenue:  t.Revenue(),
			Expenses: t.Expenses(),
			Profit:   t.Revenue().Sub(t.Expenses()),
		})
	}
	return out
}

// BuildReport summarizes filtered, the ledger already restricted to the period, and takes
// the monthly series from history, which is never period-filtered.
func BuildReport(p period.Period, since string, filtered, history model.Ledger, now time.Time, months int) model.FinancialReport {
	t := sumLedger(filtered, everyDate)
	revenue := t.Revenue()
	expenses := t.Expenses()
	profit := revenue.Sub(expenses)

	r := model.FinancialReport{
		Period:              string(p),
		Since:               since,
		TotalRevenue:        revenue,
		TotalExpenses:       expenses,
		Profit:              profit,
		B2BRevenue:          t.B2B,
		B2CRevenue:          t.B2C,
		B2BShare:            money.Percent(t.B2B, revenue),
		B2CShare:            money.Percent(t.B2C, revenue),
		RawMaterialExpenses: t.Purchases,
		TruckExpenses:       t.Trucks,
		MaintenanceExpenses: t.Maintenance,
		PendingReceivables:  money.Sum(filtered.B2B, b2bRemaining),
		ExpenseBreakdown: []model.ExpenseBreakdown{
			{Category: model.CategoryRawMaterials, Amount: t.Purchases, Percentage: money.Percent(t.Purchases, expenses)},
			{Category: model.CategoryFleet, Amount: t.Trucks, Percentage: money.Percent(t.Trucks, expenses)},
			{Category: model.CategoryMaintenance, Amount: t.Maintenance, Percentage: money.Percent(t.Maintenance, expenses)},
		},
		Monthly: Monthly(history, now, months),
	}
	if revenue.IsPositive() {
		margin := money.Percent(profit, revenue)
		r.ProfitMargin = &margin
	}
	return r
}

// BuildDashboard computes the landing-page cards over the whole ledger.
func BuildDashboard(l model.Ledger, trucks int, now time.Time) model.DashboardStats {
	t := sumLedger(l, everyDate)
	today := period.Today(now)
	isToday := func(date string) bool { return date == today }

	todays := money.SumIf(l.B2B, func(r model.B2BLedgerRow) bool { return isToday(r.Date) }, b2bTotal).
		Add(money.SumIf(l.B2C, func(r model.AmountRow) bool { return isToday(r.Date) }, amount))

	return model.DashboardStats{
		TotalRevenue:    t.Revenue(),
		TotalExpenses:   t.Expenses(),
		Profit:          t.Revenue().Sub(t.Expenses()),
		PendingPayments: money.Sum(l.B2B, b2bRemaining),
		TodaysSales:     todays,
		TrucksActive:    trucks,
	}
}
