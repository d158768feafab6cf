package database

import (
	"database/sql"
	"errors"
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const b2bSaleSelect = `
	SELECT
		s.id, s.invoice_number, s.party_id, p.name AS party_name,
		s.product_id, pr.name AS product_name,
		s.quantity, s.unit_price, s.total_amount, s.amount_paid, s.remaining_amount,
		s.sale_date, s.due_date, s.status
	FROM b2b_sales s
	JOIN b2b_parties p ON p.id = s.party_id
	JOIN products pr ON pr.id = s.product_id
`

// GetB2BSales lists sales newest first. q matches party, product or invoice number.
func GetB2BSales(db *sqlx.DB, q string) ([]model.B2BSale, error) {
	query := b2bSaleSelect + ` WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (p.name LIKE ? OR pr.name LIKE ? OR s.invoice_number LIKE ?)`
		args = append(args, likeArg(q), likeArg(q), likeArg(q))
	}
	query += ` ORDER BY s.sale_date DESC, s.invoice_number DESC`

	sales := []model.B2BSale{}
	if err := db.Select(&sales, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get b2b sales: %w", err)
	}
	return sales, nil
}

func getB2BSaleInTx(tx *sqlx.Tx, id string) (model.B2BSale, error) {
	var s model.B2BSale
	if err := tx.Get(&s, b2bSaleSelect+` WHERE s.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, fmt.Errorf("b2b sale %s: %w", id, ErrNotFound)
		}
		return s, fmt.Errorf("failed to get b2b sale %s: %w", id, err)
	}
	return s, nil
}

// CreateB2BSale stores a validated sale under the next invoice number.
func CreateB2BSale(db *sqlx.DB, s model.B2BSale) (model.B2BSale, error) {
	tx, err := db.Beginx()
	if err != nil {
		return s, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkExistsInTx(tx, "b2b_parties", s.PartyID); err != nil {
		return s, err
	}
	if err := checkExistsInTx(tx, "products", s.ProductID); err != nil {
		return s, err
	}

	s.ID = newID()
	if s.InvoiceNumber, err = nextInvoiceNumber(tx); err != nil {
		return s, err
	}

	const q = `
		INSERT INTO b2b_sales (
			id, invoice_number, party_id, product_id, quantity, unit_price,
			total_amount, amount_paid, remaining_amount, sale_date, due_date, status
		) VALUES (
			:id, :invoice_number, :party_id, :product_id, :quantity, :unit_price,
			:total_amount, :amount_paid, :remaining_amount, :sale_date, :due_date, :status
		)`
	if _, err := tx.NamedExec(q, s); err != nil {
		return s, fmt.Errorf("CreateB2BSale failed: %w", err)
	}

	stored, err := getB2BSaleInTx(tx, s.ID)
	if err != nil {
		return s, err
	}
	if err := tx.Commit(); err != nil {
		return s, fmt.Errorf("failed to commit b2b sale: %w", err)
	}
	return stored, nil
}

// RecordB2BPayment applies a customer payment and recomputes the sale status.
func RecordB2BPayment(db *sqlx.DB, id string, amount decimal.Decimal) (model.B2BSale, error) {
	tx, err := db.Beginx()
	if err != nil {
		return model.B2BSale{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s, err := getB2BSaleInTx(tx, id)
	if err != nil {
		return s, err
	}
	paid, remaining, err := model.ApplyPayment(s.AmountPaid, s.RemainingAmount, amount)
	if err != nil {
		return s, err
	}
	status := model.PaymentStatus(paid, remaining)

	const q = `UPDATE b2b_sales SET amount_paid = ?, remaining_amount = ?, status = ? WHERE id = ?`
	if _, err := tx.Exec(q, paid, remaining, status, id); err != nil {
		return s, fmt.Errorf("failed to update b2b sale %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return s, fmt.Errorf("failed to commit payment: %w", err)
	}
	s.AmountPaid, s.RemainingAmount, s.Status = paid, remaining, status
	return s, nil
}
