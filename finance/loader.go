package finance

import (
	"context"
	"fmt"
	"time"

	"detergent/database"
	"detergent/model"
	"detergent/period"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// LoadLedger fetches the five ledger sources concurrently. since bounds every source by date;
// "" loads everything.
func LoadLedger(ctx context.Context, db *sqlx.DB, since string) (model.Ledger, error) {
	var l model.Ledger
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		l.B2B, err = database.LoadB2BLedger(gctx, db, since)
		return err
	})
	g.Go(func() (err error) {
		l.B2C, err = database.LoadB2CLedger(gctx, db, since)
		return err
	})
	g.Go(func() (err error) {
		l.Purchases, err = database.LoadPurchaseLedger(gctx, db, since)
		return err
	})
	g.Go(func() (err error) {
		l.Trucks, err = database.LoadTruckLedger(gctx, db, since)
		return err
	})
	g.Go(func() (err error) {
		l.Maintenance, err = database.LoadMaintenanceLedger(gctx, db, since)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Ledger{}, fmt.Errorf("loading ledger: %w", err)
	}
	return l, nil
}

// Report loads the whole ledger once and builds the financial report for p.
// The totals use the rows inside the period; the monthly series uses all of them.
func Report(ctx context.Context, db *sqlx.DB, p period.Period, now time.Time, months int) (model.FinancialReport, error) {
	since := p.Since(now)
	history, err := LoadLedger(ctx, db, "")
	if err != nil {
		return model.FinancialReport{}, err
	}
	return BuildReport(p, since, Filter(history, since), history, now, months), nil
}

// Dashboard loads the whole ledger and the truck count and builds the dashboard cards.
func Dashboard(ctx context.Context, db *sqlx.DB, now time.Time) (model.DashboardStats, error) {
	var l model.Ledger
	var trucks int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l, err = LoadLedger(gctx, db, "")
		return err
	})
	g.Go(func() (err error) {
		trucks, err = database.CountTrucks(db)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.DashboardStats{}, err
	}
	return BuildDashboard(l, trucks, now), nil
}
