// Package render produces the printable HTML finance report.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"detergent/model"
	"detergent/money"

	"github.com/shopspring/decimal"
)

//go:embed templates/report.html
var templates embed.FS

var reportTmpl = template.Must(template.New("report.html").Funcs(template.FuncMap{
	// Replaced per render; registered here so the template parses.
	"money":   func(decimal.Decimal) string { return "" },
	"percent": func(decimal.Decimal) string { return "" },
	"deref":   func(d *decimal.Decimal) decimal.Decimal { return *d },
}).ParseFS(templates, "templates/report.html"))

type reportPage struct {
	Business  string
	Generated string
	Report    model.FinancialReport
}

// FinanceReport writes report as a standalone HTML page.
func FinanceReport(w io.Writer, business string, report model.FinancialReport, f *money.Formatter, generated time.Time) error {
	t, err := reportTmpl.Clone()
	if err != nil {
		return fmt.Errorf("cloning report template: %w", err)
	}
	t.Funcs(template.FuncMap{
		"money":   f.Format,
		"percent": f.FormatPercent,
	})
	page := reportPage{
		Business:  business,
		Generated: generated.Format("2006-01-02 15:04"),
		Report:    report,
	}
	if err := t.Execute(w, page); err != nil {
		return fmt.Errorf("rendering finance report: %w", err)
	}
	return nil
}
