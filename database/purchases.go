package database

import (
	"database/sql"
	"errors"
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const purchaseSelect = `
	SELECT
		p.id, p.po_number, p.supplier_id, s.name AS supplier_name,
		p.material_id, m.name AS material_name, m.unit AS material_unit,
		p.quantity, p.unit_price, p.total_amount, p.amount_paid, p.remaining_amount,
		p.purchase_date, p.due_date, p.notes
	FROM raw_material_purchases p
	JOIN suppliers s ON s.id = p.supplier_id
	JOIN raw_materials m ON m.id = p.material_id
`

// GetPurchases lists purchases newest first. q matches supplier or material name.
func GetPurchases(db *sqlx.DB, q string) ([]model.Purchase, error) {
	query := purchaseSelect + ` WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (s.name LIKE ? OR m.name LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY p.purchase_date DESC, p.po_number DESC`

	purchases := []model.Purchase{}
	if err := db.Select(&purchases, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, nil
}

func getPurchaseInTx(tx *sqlx.Tx, id string) (model.Purchase, error) {
	var p model.Purchase
	if err := tx.Get(&p, purchaseSelect+` WHERE p.id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, fmt.Errorf("purchase %s: %w", id, ErrNotFound)
		}
		return p, fmt.Errorf("failed to get purchase %s: %w", id, err)
	}
	return p, nil
}

// CreatePurchase stores a validated purchase under the next PO number and returns the stored row.
func CreatePurchase(db *sqlx.DB, p model.Purchase) (model.Purchase, error) {
	tx, err := db.Beginx()
	if err != nil {
		return p, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkExistsInTx(tx, "suppliers", p.SupplierID); err != nil {
		return p, err
	}
	if err := checkExistsInTx(tx, "raw_materials", p.MaterialID); err != nil {
		return p, err
	}

	p.ID = newID()
	if p.PONumber, err = nextPONumber(tx); err != nil {
		return p, err
	}

	const q = `
		INSERT INTO raw_material_purchases (
			id, po_number, supplier_id, material_id, quantity, unit_price,
			total_amount, amount_paid, remaining_amount, purchase_date, due_date, notes
		) VALUES (
			:id, :po_number, :supplier_id, :material_id, :quantity, :unit_price,
			:total_amount, :amount_paid, :remaining_amount, :purchase_date, :due_date, :notes
		)`
	if _, err := tx.NamedExec(q, p); err != nil {
		return p, fmt.Errorf("CreatePurchase failed: %w", err)
	}

	stored, err := getPurchaseInTx(tx, p.ID)
	if err != nil {
		return p, err
	}
	if err := tx.Commit(); err != nil {
		return p, fmt.Errorf("failed to commit purchase: %w", err)
	}
	return stored, nil
}

// RecordPurchasePayment applies a supplier payment against the purchase's remaining balance.
func RecordPurchasePayment(db *sqlx.DB, id string, amount decimal.Decimal) (model.Purchase, error) {
	tx, err := db.Beginx()
	if err != nil {
		return model.Purchase{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := getPurchaseInTx(tx, id)
	if err != nil {
		return p, err
	}
	paid, remaining, err := model.ApplyPayment(p.AmountPaid, p.RemainingAmount, amount)
	if err != nil {
		return p, err
	}

	const q = `UPDATE raw_material_purchases SET amount_paid = ?, remaining_amount = ? WHERE id = ?`
	if _, err := tx.Exec(q, paid, remaining, id); err != nil {
		return p, fmt.Errorf("failed to update purchase %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return p, fmt.Errorf("failed to commit payment: %w", err)
	}
	p.AmountPaid, p.RemainingAmount = paid, remaining
	return p, nil
}
