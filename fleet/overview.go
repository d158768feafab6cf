package fleet

import (
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

// Overview totals truck expenses overall, this month and per type, with a row per truck.
func Overview(trucks []model.Truck, expenses []model.TruckExpense, now time.Time) model.FleetOverview {
	amount := func(e model.TruckExpense) decimal.Decimal { return e.Amount }
	ofType := func(t string) decimal.Decimal {
		return money.SumIf(expenses, func(e model.TruckExpense) bool { return e.ExpenseType == t }, amount)
	}

	byTruck := make(map[string]*model.TruckStats, len(trucks))
	stats := make([]model.TruckStats, len(trucks))
	for i, t := range trucks {
		stats[i] = model.TruckStats{Truck: t, TotalCost: decimal.Zero}
		byTruck[t.ID] = &stats[i]
	}
	for _, e := range expenses {
		s, ok := byTruck[e.TruckID]
		if !ok {
			continue
		}
		s.TotalCost = s.TotalCost.Add(e.Amount)
		s.ExpenseCount++
		if e.ExpenseDate > s.LastExpense {
			s.LastExpense = e.ExpenseDate
		}
	}

	return model.FleetOverview{
		TotalExpenses:     money.Sum(expenses, amount),
		ThisMonthExpenses: money.SumIf(expenses, func(e model.TruckExpense) bool { return period.InMonth(now, e.ExpenseDate) }, amount),
		DieselExpenses:    ofType(model.ExpenseDiesel),
		SalaryExpenses:    ofType(model.ExpenseSalary),
		RepairExpenses:    ofType(model.ExpenseRepair),
		ActiveTrucks:      len(trucks),
		Trucks:            stats,
	}
}
