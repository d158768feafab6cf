// Package finances serves the dashboard cards and the financial report in JSON, CSV, HTML and PDF.
package finances

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"detergent/config"
	"detergent/finance"
	"detergent/model"
	"detergent/money"
	"detergent/pdfexport"
	"detergent/period"
	"detergent/render"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	now       = time.Now
	renderPDF = pdfexport.RenderPDF
)

func DashboardHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		stats, err := finance.Dashboard(r.Context(), db, now())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, stats)
	}
}

// loadReport builds the report for the request's ?period=.
func loadReport(db *sqlx.DB, r *http.Request) (model.FinancialReport, error) {
	p, err := period.Parse(r.URL.Query().Get("period"))
	if err != nil {
		return model.FinancialReport{}, err
	}
	months := config.GetConfig().Business.MonthlyWindow
	return finance.Report(r.Context(), db, p, now(), months)
}

func ReportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		report, err := loadReport(db, r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, report)
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeRow(buf *bytes.Buffer, fields ...string) {
	for i, f := range fields {
		fields[i] = quoteAll(f)
	}
	buf.WriteString(strings.Join(fields, ",") + "\r\n")
}

func fixed(d decimal.Decimal) string { return d.StringFixed(2) }

// ExportCSVHandler writes the monthly series followed by the period totals.
func ExportCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		report, err := loadReport(db, r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		writeRow(&buf, "Month", "Revenue", "Expenses", "Profit")
		for _, m := range report.Monthly {
			writeRow(&buf, m.Month, fixed(m.Revenue), fixed(m.Expenses), fixed(m.Profit))
		}
		buf.WriteString("\r\n")

		margin := ""
		if report.ProfitMargin != nil {
			margin = report.ProfitMargin.StringFixed(1)
		}
		writeRow(&buf, "Metric", "Value")
		writeRow(&buf, "Period", report.Period)
		writeRow(&buf, "Total Revenue", fixed(report.TotalRevenue))
		writeRow(&buf, "B2B Revenue", fixed(report.B2BRevenue))
		writeRow(&buf, "B2C Revenue", fixed(report.B2CRevenue))
		writeRow(&buf, "Total Expenses", fixed(report.TotalExpenses))
		for _, e := range report.ExpenseBreakdown {
			writeRow(&buf, e.Category, fixed(e.Amount))
		}
		writeRow(&buf, "Profit", fixed(report.Profit))
		writeRow(&buf, "Profit Margin %", margin)
		writeRow(&buf, "Pending Receivables", fixed(report.PendingReceivables))

		filename := fmt.Sprintf("financial-report_%s_%s.csv", report.Period, period.Today(now()))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

func renderHTML(report model.FinancialReport) ([]byte, error) {
	b := config.GetConfig().Business
	var buf bytes.Buffer
	f := money.NewFormatter(b.Locale, b.CurrencySymbol)
	if err := render.FinanceReport(&buf, b.Name, report, f, now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReportHTMLHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		report, err := loadReport(db, r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		page, err := renderHTML(report)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func ReportPDFHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		report, err := loadReport(db, r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		page, err := renderHTML(report)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		pdf, err := renderPDF(r.Context(), string(page))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		zap.L().Info("finance report exported", zap.String("period", report.Period), zap.Int("bytes", len(pdf)))

		filename := fmt.Sprintf("financial-report_%s_%s.pdf", report.Period, period.Today(now()))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(pdf)
	}
}
