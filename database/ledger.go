package database

import (
	"context"
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

// The ledger loaders return the narrow rows the finance reductions sum. Each accepts an
// optional since date ("" means no lower bound) and is safe to run concurrently.

func selectSince[T any](ctx context.Context, db *sqlx.DB, query, dateCol, since, what string) ([]T, error) {
	var args []interface{}
	query += ` WHERE 1=1`
	if since != "" {
		query += ` AND ` + dateCol + ` >= ?`
		args = append(args, since)
	}
	rows := []T{}
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load %s ledger: %w", what, err)
	}
	return rows, nil
}

func LoadB2BLedger(ctx context.Context, db *sqlx.DB, since string) ([]model.B2BLedgerRow, error) {
	return selectSince[model.B2BLedgerRow](ctx, db,
		`SELECT total_amount, amount_paid, remaining_amount, sale_date FROM b2b_sales`,
		"sale_date", since, "b2b")
}

func LoadB2CLedger(ctx context.Context, db *sqlx.DB, since string) ([]model.AmountRow, error) {
	return selectSince[model.AmountRow](ctx, db,
		`SELECT total_amount AS amount, sale_date AS date FROM b2c_sales`,
		"sale_date", since, "b2c")
}

func LoadPurchaseLedger(ctx context.Context, db *sqlx.DB, since string) ([]model.AmountRow, error) {
	return selectSince[model.AmountRow](ctx, db,
		`SELECT total_amount AS amount, purchase_date AS date FROM raw_material_purchases`,
		"purchase_date", since, "purchase")
}

func LoadTruckLedger(ctx context.Context, db *sqlx.DB, since string) ([]model.AmountRow, error) {
	return selectSince[model.AmountRow](ctx, db,
		`SELECT amount, expense_date AS date FROM truck_expenses`,
		"expense_date", since, "truck expense")
}

func LoadMaintenanceLedger(ctx context.Context, db *sqlx.DB, since string) ([]model.AmountRow, error) {
	return selectSince[model.AmountRow](ctx, db,
		`SELECT cost AS amount, maintenance_date AS date FROM machine_maintenance`,
		"maintenance_date", since, "maintenance")
}
