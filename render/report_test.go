package render

import (
	"bytes"
	"testing"
	"time"

	"detergent/model"
	"detergent/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceReport(t *testing.T) {
	margin := decimal.RequireFromString("25.0")
	report := model.FinancialReport{
		Period:        "month",
		Since:         "2026-10-01",
		TotalRevenue:  decimal.NewFromInt(12000),
		TotalExpenses: decimal.NewFromInt(9000),
		Profit:        decimal.NewFromInt(3000),
		ProfitMargin:  &margin,
		ExpenseBreakdown: []model.ExpenseBreakdown{
			{Category: model.CategoryRawMaterials, Amount: decimal.NewFromInt(9000), Percentage: decimal.NewFromInt(100)},
		},
		Monthly: []model.MonthlyData{
			{Month: "Oct 2026", Revenue: decimal.NewFromInt(12000), Expenses: decimal.NewFromInt(9000), Profit: decimal.NewFromInt(3000)},
		},
	}

	var buf bytes.Buffer
	err := FinanceReport(&buf, "Sparkle <Detergents>", report, money.NewFormatter("en", "$"), time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Sparkle &lt;Detergents&gt;")
	assert.Contains(t, out, "$12,000.00")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "since 2026-10-01")
	assert.Contains(t, out, "Oct 2026")
	assert.Contains(t, out, "2026-10-19 09:30")
}

func TestFinanceReportWithoutRevenue(t *testing.T) {
	report := model.FinancialReport{
		Period: "all",
		Profit: decimal.NewFromInt(-500),
	}
	var buf bytes.Buffer
	require.NoError(t, FinanceReport(&buf, "Works", report, money.NewFormatter("en", "$"), time.Now()))

	out := buf.String()
	assert.Contains(t, out, `class="num neg">-$500.00`)
	assert.Contains(t, out, "No data.")
	assert.NotContains(t, out, "since")
}
