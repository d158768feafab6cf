package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

func GetAllMachines(db *sqlx.DB, q string) ([]model.Machine, error) {
	query := `SELECT id, name, type FROM machines WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (name LIKE ? OR type LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY name`

	machines := []model.Machine{}
	if err := db.Select(&machines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get machines: %w", err)
	}
	return machines, nil
}

func CreateMachine(db *sqlx.DB, m *model.Machine) error {
	m.ID = newID()
	const q = `INSERT INTO machines (id, name, type) VALUES (:id, :name, :type)`
	if _, err := db.NamedExec(q, m); err != nil {
		return insertErr("CreateMachine", m.Name, err)
	}
	return nil
}

func UpsertMachineInTx(tx *sqlx.Tx, m model.Machine) error {
	const q = `
		INSERT INTO machines (id, name, type)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET type = excluded.type
	`
	if _, err := tx.Exec(q, newID(), m.Name, m.Type); err != nil {
		return fmt.Errorf("UpsertMachineInTx (Name: %s) failed: %w", m.Name, err)
	}
	return nil
}
