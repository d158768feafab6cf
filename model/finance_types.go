package model

import "github.com/shopspring/decimal"

// Ledger rows are the narrow projections the finance reductions work on.

type B2BLedgerRow struct {
	TotalAmount     decimal.Decimal `db:"total_amount"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	Date            string          `db:"sale_date"`
}

// AmountRow is a single amount on a date: B2C totals, purchase totals, truck expenses, maintenance cost.
type AmountRow struct {
	Amount decimal.Decimal `db:"amount"`
	Date   string          `db:"date"`
}

// Ledger holds every source the finance report sums.
type Ledger struct {
	B2B         []B2BLedgerRow
	B2C         []AmountRow
	Purchases   []AmountRow
	Trucks      []AmountRow
	Maintenance []AmountRow
}

// Expense categories, in report order.
const (
	CategoryRawMaterials = "Raw Materials"
	CategoryFleet        = "Fleet Operations"
	CategoryMaintenance  = "Maintenance"
)

type ExpenseBreakdown struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type MonthlyData struct {
	Month    string          `json:"month"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type FinancialReport struct {
	Period              string             `json:"period"`
	Since               string             `json:"since,omitempty"`
	TotalRevenue        decimal.Decimal    `json:"totalRevenue"`
	TotalExpenses       decimal.Decimal    `json:"totalExpenses"`
	Profit              decimal.Decimal    `json:"profit"`
	ProfitMargin        *decimal.Decimal   `json:"profitMargin"`
	B2BRevenue          decimal.Decimal    `json:"b2bRevenue"`
	B2CRevenue          decimal.Decimal    `json:"b2cRevenue"`
	B2BShare            decimal.Decimal    `json:"b2bShare"`
	B2CShare            decimal.Decimal    `json:"b2cShare"`
	RawMaterialExpenses decimal.Decimal    `json:"rawMaterialExpenses"`
	TruckExpenses       decimal.Decimal    `json:"truckExpenses"`
	MaintenanceExpenses decimal.Decimal    `json:"maintenanceExpenses"`
	PendingReceivables  decimal.Decimal    `json:"pendingReceivables"`
	ExpenseBreakdown    []ExpenseBreakdown `json:"expenseBreakdown"`
	Monthly             []MonthlyData      `json:"monthly"`
}

type DashboardStats struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	Profit          decimal.Decimal `json:"profit"`
	PendingPayments decimal.Decimal `json:"pendingPayments"`
	TodaysSales     decimal.Decimal `json:"todaysSales"`
	TrucksActive    int             `json:"trucksActive"`
}
