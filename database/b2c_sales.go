package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

const b2cSaleSelect = `
	SELECT
		s.id, s.product_id, pr.name AS product_name, s.quantity, s.unit_price,
		s.total_amount, s.sale_date, s.customer_name
	FROM b2c_sales s
	JOIN products pr ON pr.id = s.product_id
`

// GetB2CSales lists retail sales newest first. q matches product or customer name;
// sales without a customer match as the walk-in label.
func GetB2CSales(db *sqlx.DB, q string) ([]model.B2CSale, error) {
	query := b2cSaleSelect + ` WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (pr.name LIKE ? OR COALESCE(NULLIF(s.customer_name, ''), ?) LIKE ?)`
		args = append(args, likeArg(q), model.WalkInCustomer, likeArg(q))
	}
	query += ` ORDER BY s.sale_date DESC, pr.name`

	sales := []model.B2CSale{}
	if err := db.Select(&sales, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get b2c sales: %w", err)
	}
	return sales, nil
}

func CreateB2CSale(db *sqlx.DB, s model.B2CSale) (model.B2CSale, error) {
	s.ID = newID()
	const q = `
		INSERT INTO b2c_sales (id, product_id, quantity, unit_price, total_amount, sale_date, customer_name)
		VALUES (:id, :product_id, :quantity, :unit_price, :total_amount, :sale_date, :customer_name)`
	if _, err := db.NamedExec(q, s); err != nil {
		return s, fmt.Errorf("CreateB2CSale failed: %w", err)
	}
	return s, nil
}
