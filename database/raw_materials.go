package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

func GetAllRawMaterials(db *sqlx.DB, q string) ([]model.RawMaterial, error) {
	query := `SELECT id, name, unit FROM raw_materials WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND name LIKE ?`
		args = append(args, likeArg(q))
	}
	query += ` ORDER BY name`

	materials := []model.RawMaterial{}
	if err := db.Select(&materials, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get raw materials: %w", err)
	}
	return materials, nil
}

func CreateRawMaterial(db *sqlx.DB, m *model.RawMaterial) error {
	m.ID = newID()
	const q = `INSERT INTO raw_materials (id, name, unit) VALUES (:id, :name, :unit)`
	if _, err := db.NamedExec(q, m); err != nil {
		return insertErr("CreateRawMaterial", m.Name, err)
	}
	return nil
}

func UpsertRawMaterialInTx(tx *sqlx.Tx, m model.RawMaterial) error {
	const q = `
		INSERT INTO raw_materials (id, name, unit)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET unit = excluded.unit
	`
	if _, err := tx.Exec(q, newID(), m.Name, m.Unit); err != nil {
		return fmt.Errorf("UpsertRawMaterialInTx (Name: %s) failed: %w", m.Name, err)
	}
	return nil
}
