package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Truck expense types.
const (
	ExpenseDiesel = "diesel"
	ExpenseSalary = "salary"
	ExpenseRepair = "repair"
)

type Truck struct {
	ID          string          `db:"id" json:"id"`
	TruckNumber string          `db:"truck_number" json:"truckNumber"`
	Capacity    decimal.Decimal `db:"capacity" json:"capacity"`
	DriverName  string          `db:"driver_name" json:"driverName"`
}

func (t *Truck) Normalize() error {
	num, err := required("truckNumber", t.TruckNumber)
	if err != nil {
		return err
	}
	if t.Capacity.IsNegative() {
		return invalid("capacity must not be negative")
	}
	t.TruckNumber = strings.ToUpper(num)
	t.DriverName = strings.TrimSpace(t.DriverName)
	return nil
}

type TruckExpense struct {
	ID          string          `db:"id" json:"id"`
	TruckID     string          `db:"truck_id" json:"truckId"`
	TruckNumber string          `db:"truck_number" json:"truckNumber"`
	ExpenseDate string          `db:"expense_date" json:"expenseDate"`
	ExpenseType string          `db:"expense_type" json:"expenseType"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
}

func (e *TruckExpense) Normalize(today string) error {
	var err error
	if e.TruckID, err = required("truckId", e.TruckID); err != nil {
		return err
	}
	if !e.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	switch e.ExpenseType = strings.TrimSpace(e.ExpenseType); e.ExpenseType {
	case "":
		e.ExpenseType = ExpenseDiesel
	case ExpenseDiesel, ExpenseSalary, ExpenseRepair:
	default:
		return invalid("expenseType must be one of diesel, salary, repair")
	}
	e.ExpenseDate, err = normalizeDate("expenseDate", e.ExpenseDate, today)
	return err
}

type TruckStats struct {
	Truck
	TotalCost    decimal.Decimal `json:"totalCost"`
	ExpenseCount int             `json:"expenseCount"`
	LastExpense  string          `json:"lastExpense"`
}

type FleetOverview struct {
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	ThisMonthExpenses decimal.Decimal `json:"thisMonthExpenses"`
	DieselExpenses    decimal.Decimal `json:"dieselExpenses"`
	SalaryExpenses    decimal.Decimal `json:"salaryExpenses"`
	RepairExpenses    decimal.Decimal `json:"repairExpenses"`
	ActiveTrucks      int             `json:"activeTrucks"`
	Trucks            []TruckStats    `json:"trucks"`
}
