package finances

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"detergent/database"
	"detergent/dbtest"
	"detergent/model"
	"detergent/pdfexport"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })
}

// seed stores 1000 of B2C sales this month, 200 of them today, and a 400 truck expense last month.
func seed(t *testing.T, db *sqlx.DB) {
	t.Helper()
	p := model.Product{Name: "Powder 1kg", UnitPrice: d("100")}
	require.NoError(t, database.CreateProduct(db, &p))
	for _, s := range []model.B2CSale{
		{ProductID: p.ID, Quantity: d("8"), UnitPrice: d("100"), TotalAmount: d("800"), SaleDate: "2026-10-05"},
		{ProductID: p.ID, Quantity: d("2"), UnitPrice: d("100"), TotalAmount: d("200"), SaleDate: "2026-10-19"},
	} {
		_, err := database.CreateB2CSale(db, s)
		require.NoError(t, err)
	}
	truck := model.Truck{TruckNumber: "KA-01-1234"}
	require.NoError(t, database.CreateTruck(db, &truck))
	_, err := database.CreateTruckExpense(db, model.TruckExpense{
		TruckID: truck.ID, ExpenseDate: "2026-09-10", ExpenseType: model.ExpenseDiesel, Amount: d("400"),
	})
	require.NoError(t, err)
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestReportHandlerAppliesPeriod(t *testing.T) {
	fixedClock(t)
	db := dbtest.Open(t)
	seed(t, db)

	tests := []struct {
		period   string
		revenue  string
		expenses string
	}{
		{"", "1000", "400"},
		{"all", "1000", "400"},
		{"month", "1000", "0"},
		{"year", "1000", "400"},
	}
	for _, tt := range tests {
		t.Run("period="+tt.period, func(t *testing.T) {
			rec := get(ReportHandler(db), "/api/finances?period="+tt.period)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var got model.FinancialReport
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.True(t, d(tt.revenue).Equal(got.TotalRevenue), "revenue %s", got.TotalRevenue)
			assert.True(t, d(tt.expenses).Equal(got.TotalExpenses), "expenses %s", got.TotalExpenses)
			assert.Len(t, got.Monthly, 6)
		})
	}

	rec := get(ReportHandler(db), "/api/finances?period=decade")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardHandler(t *testing.T) {
	fixedClock(t)
	db := dbtest.Open(t)
	seed(t, db)

	rec := get(DashboardHandler(db), "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got model.DashboardStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.True(t, d("1000").Equal(got.TotalRevenue))
	assert.True(t, d("600").Equal(got.Profit))
	assert.True(t, d("200").Equal(got.TodaysSales))
	assert.Equal(t, 1, got.TrucksActive)
}

func TestExportCSVHandler(t *testing.T) {
	fixedClock(t)
	db := dbtest.Open(t)
	seed(t, db)

	rec := get(ExportCSVHandler(db), "/api/finances/export_csv?period=all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "financial-report_all_2026-10-19.csv")

	body := rec.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	text := string(body[3:])
	assert.True(t, strings.HasPrefix(text, `"Month","Revenue","Expenses","Profit"`+"\r\n"))
	assert.Contains(t, text, `"Oct 2026","1000.00","0.00","1000.00"`)
	assert.Contains(t, text, `"Sep 2026","0.00","400.00","-400.00"`)
	assert.Contains(t, text, `"Profit Margin %","60.0"`)
}

func TestReportHTMLHandler(t *testing.T) {
	fixedClock(t)
	db := dbtest.Open(t)
	seed(t, db)

	rec := get(ReportHTMLHandler(db), "/api/finances/report?period=month")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Period: month")
	assert.Contains(t, rec.Body.String(), "Oct 2026")
}

func TestReportPDFHandler(t *testing.T) {
	fixedClock(t)
	db := dbtest.Open(t)
	orig := renderPDF
	t.Cleanup(func() { renderPDF = orig })

	renderPDF = func(_ context.Context, html string) ([]byte, error) {
		assert.Contains(t, html, "<h1>")
		return []byte("%PDF-1.4 fake"), nil
	}
	rec := get(ReportPDFHandler(db), "/api/finances/report.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())

	renderPDF = func(context.Context, string) ([]byte, error) {
		return nil, pdfexport.ErrNoBrowser
	}
	rec = get(ReportPDFHandler(db), "/api/finances/report.pdf")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	renderPDF = func(context.Context, string) ([]byte, error) {
		return nil, errors.New("page crashed")
	}
	rec = get(ReportPDFHandler(db), "/api/finances/report.pdf")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReadOnlyHandlersRejectWrites(t *testing.T) {
	db := dbtest.Open(t)
	handlers := map[string]http.HandlerFunc{
		"dashboard":  DashboardHandler(db),
		"report":     ReportHandler(db),
		"export_csv": ExportCSVHandler(db),
		"html":       ReportHTMLHandler(db),
		"pdf":        ReportPDFHandler(db),
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
		})
	}
}
