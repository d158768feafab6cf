package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

const maintenanceSelect = `
	SELECT
		r.id, r.machine_id, m.name AS machine_name, r.maintenance_date,
		r.cost, r.description, r.maintenance_type
	FROM machine_maintenance r
	JOIN machines m ON m.id = r.machine_id
`

// GetMaintenanceRecords lists maintenance newest first. q matches machine name or description.
func GetMaintenanceRecords(db *sqlx.DB, q string) ([]model.MaintenanceRecord, error) {
	query := maintenanceSelect + ` WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (m.name LIKE ? OR r.description LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY r.maintenance_date DESC, m.name`

	records := []model.MaintenanceRecord{}
	if err := db.Select(&records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get maintenance records: %w", err)
	}
	return records, nil
}

func CreateMaintenanceRecord(db *sqlx.DB, r model.MaintenanceRecord) (model.MaintenanceRecord, error) {
	tx, err := db.Beginx()
	if err != nil {
		return r, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkExistsInTx(tx, "machines", r.MachineID); err != nil {
		return r, err
	}
	r.ID = newID()
	const q = `
		INSERT INTO machine_maintenance (id, machine_id, maintenance_date, cost, description, maintenance_type)
		VALUES (:id, :machine_id, :maintenance_date, :cost, :description, :maintenance_type)`
	if _, err := tx.NamedExec(q, r); err != nil {
		return r, fmt.Errorf("CreateMaintenanceRecord failed: %w", err)
	}
	if err := tx.Get(&r, maintenanceSelect+` WHERE r.id = ?`, r.ID); err != nil {
		return r, fmt.Errorf("failed to reload maintenance record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return r, fmt.Errorf("failed to commit maintenance record: %w", err)
	}
	return r, nil
}
