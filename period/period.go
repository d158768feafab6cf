// Package period resolves the "all / year / quarter / month" report filters
// and the calendar-month windows used by the monthly series.
package period

import (
	"fmt"
	"strings"
	"time"

	"detergent/model"
)

type Period string

const (
	All     Period = "all"
	Year    Period = "year"
	Quarter Period = "quarter"
	Month   Period = "month"
)

// Parse accepts the query-string spelling. Empty means All.
func Parse(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return All, nil
	case All, Year, Quarter, Month:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", model.ErrValidation, s)
	}
}

// Since returns the first date included by p relative to now, or "" for All.
func (p Period) Since(now time.Time) string {
	y, m, _ := now.Date()
	loc := now.Location()
	switch p {
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc).Format(model.DateLayout)
	case Quarter:
		q := ((int(m) - 1) / 3) * 3
		return time.Date(y, time.Month(q+1), 1, 0, 0, 0, 0, loc).Format(model.DateLayout)
	case Month:
		return MonthStart(now)
	default:
		return ""
	}
}

// Includes reports whether date falls on or after since. An empty since includes everything.
func Includes(since, date string) bool {
	return since == "" || date >= since
}

func Today(now time.Time) string {
	return now.Format(model.DateLayout)
}

func MonthStart(now time.Time) string {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).Format(model.DateLayout)
}

// InMonth reports whether date is in the same calendar month as now.
func InMonth(now time.Time, date string) bool {
	return strings.HasPrefix(date, now.Format("2006-01-"))
}

// Window is one calendar month with inclusive date bounds.
type Window struct {
	Label string
	Start string
	End   string
}

func (w Window) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// LastMonths returns n calendar months ending with the month of now, oldest first.
func LastMonths(now time.Time, n int) []Window {
	y, m, _ := now.Date()
	loc := now.Location()
	out := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		first := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, loc)
		last := first.AddDate(0, 1, -1)
		out = append(out, Window{
			Label: first.Format("Jan 2006"),
			Start: first.Format(model.DateLayout),
			End:   last.Format(model.DateLayout),
		})
	}
	return out
}
