package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

func GetAllParties(db *sqlx.DB, q string) ([]model.B2BParty, error) {
	query := `SELECT id, name, contact_person, phone, address, credit_limit FROM b2b_parties WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (name LIKE ? OR contact_person LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY name`

	parties := []model.B2BParty{}
	if err := db.Select(&parties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get all parties: %w", err)
	}
	return parties, nil
}

func CreateParty(db *sqlx.DB, p *model.B2BParty) error {
	p.ID = newID()
	const q = `
		INSERT INTO b2b_parties (id, name, contact_person, phone, address, credit_limit)
		VALUES (:id, :name, :contact_person, :phone, :address, :credit_limit)`
	if _, err := db.NamedExec(q, p); err != nil {
		return insertErr("CreateParty", p.Name, err)
	}
	return nil
}

// UpsertPartyInTx inserts a party or replaces the details of the one with the same name.
func UpsertPartyInTx(tx *sqlx.Tx, p model.B2BParty) error {
	const q = `
		INSERT INTO b2b_parties (id, name, contact_person, phone, address, credit_limit)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			contact_person = excluded.contact_person,
			phone = excluded.phone,
			address = excluded.address,
			credit_limit = excluded.credit_limit
	`
	_, err := tx.Exec(q, newID(), p.Name, p.ContactPerson, p.Phone, p.Address, p.CreditLimit)
	if err != nil {
		return fmt.Errorf("UpsertPartyInTx (Name: %s) failed: %w", p.Name, err)
	}
	return nil
}
