package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

const truckExpenseSelect = `
	SELECT
		e.id, e.truck_id, t.truck_number, e.expense_date, e.expense_type, e.amount, e.description
	FROM truck_expenses e
	JOIN trucks t ON t.id = e.truck_id
`

// GetTruckExpenses lists expenses newest first. q matches truck number or description.
func GetTruckExpenses(db *sqlx.DB, q string) ([]model.TruckExpense, error) {
	query := truckExpenseSelect + ` WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (t.truck_number LIKE ? OR e.description LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY e.expense_date DESC, t.truck_number`

	expenses := []model.TruckExpense{}
	if err := db.Select(&expenses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get truck expenses: %w", err)
	}
	return expenses, nil
}

func CreateTruckExpense(db *sqlx.DB, e model.TruckExpense) (model.TruckExpense, error) {
	tx, err := db.Beginx()
	if err != nil {
		return e, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkExistsInTx(tx, "trucks", e.TruckID); err != nil {
		return e, err
	}
	e.ID = newID()
	const q = `
		INSERT INTO truck_expenses (id, truck_id, expense_date, expense_type, amount, description)
		VALUES (:id, :truck_id, :expense_date, :expense_type, :amount, :description)`
	if _, err := tx.NamedExec(q, e); err != nil {
		return e, fmt.Errorf("CreateTruckExpense failed: %w", err)
	}
	if err := tx.Get(&e, truckExpenseSelect+` WHERE e.id = ?`, e.ID); err != nil {
		return e, fmt.Errorf("failed to reload truck expense: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return e, fmt.Errorf("failed to commit truck expense: %w", err)
	}
	return e, nil
}
