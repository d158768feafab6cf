package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

// GetWithdrawals lists partner withdrawals newest first. since, when set, keeps rows dated on
// or after it. q matches partner name or description.
func GetWithdrawals(db *sqlx.DB, since, q string) ([]model.PartnerWithdrawal, error) {
	query := `SELECT id, partner_name, amount, withdrawal_date, description FROM partner_withdrawals WHERE 1=1`
	var args []interface{}
	if since != "" {
		query += ` AND withdrawal_date >= ?`
		args = append(args, since)
	}
	if q != "" {
		query += ` AND (partner_name LIKE ? OR description LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY withdrawal_date DESC, partner_name`

	withdrawals := []model.PartnerWithdrawal{}
	if err := db.Select(&withdrawals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get withdrawals: %w", err)
	}
	return withdrawals, nil
}

func CreateWithdrawal(db *sqlx.DB, w *model.PartnerWithdrawal) error {
	w.ID = newID()
	const q = `
		INSERT INTO partner_withdrawals (id, partner_name, amount, withdrawal_date, description)
		VALUES (:id, :partner_name, :amount, :withdrawal_date, :description)`
	if _, err := db.NamedExec(q, w); err != nil {
		return fmt.Errorf("CreateWithdrawal failed: %w", err)
	}
	return nil
}
