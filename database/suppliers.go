package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

func GetAllSuppliers(db *sqlx.DB, q string) ([]model.Supplier, error) {
	query := `SELECT id, name, contact_person, phone FROM suppliers WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (name LIKE ? OR contact_person LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY name`

	suppliers := []model.Supplier{}
	if err := db.Select(&suppliers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get all suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier inserts s and fills in its generated id.
func CreateSupplier(db *sqlx.DB, s *model.Supplier) error {
	s.ID = newID()
	const q = `INSERT INTO suppliers (id, name, contact_person, phone) VALUES (:id, :name, :contact_person, :phone)`
	if _, err := db.NamedExec(q, s); err != nil {
		return insertErr("CreateSupplier", s.Name, err)
	}
	return nil
}

// UpsertSupplierInTx inserts a supplier or updates the contact fields of the one with the same name.
func UpsertSupplierInTx(tx *sqlx.Tx, s model.Supplier) error {
	const q = `
		INSERT INTO suppliers (id, name, contact_person, phone)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			contact_person = excluded.contact_person,
			phone = excluded.phone
	`
	if _, err := tx.Exec(q, newID(), s.Name, s.ContactPerson, s.Phone); err != nil {
		return fmt.Errorf("UpsertSupplierInTx (Name: %s) failed: %w", s.Name, err)
	}
	return nil
}

func checkExistsInTx(tx *sqlx.Tx, table, id string) error {
	var exists int
	err := tx.Get(&exists, "SELECT COUNT(*) FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to look up %s %s: %w", table, id, err)
	}
	if exists == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}
