package database

import (
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

func GetAllTrucks(db *sqlx.DB, q string) ([]model.Truck, error) {
	query := `SELECT id, truck_number, capacity, driver_name FROM trucks WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (truck_number LIKE ? OR driver_name LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY truck_number`

	trucks := []model.Truck{}
	if err := db.Select(&trucks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get trucks: %w", err)
	}
	return trucks, nil
}

func CountTrucks(db *sqlx.DB) (int, error) {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM trucks`); err != nil {
		return 0, fmt.Errorf("failed to count trucks: %w", err)
	}
	return n, nil
}

func CreateTruck(db *sqlx.DB, t *model.Truck) error {
	t.ID = newID()
	const q = `INSERT INTO trucks (id, truck_number, capacity, driver_name) VALUES (:id, :truck_number, :capacity, :driver_name)`
	if _, err := db.NamedExec(q, t); err != nil {
		return insertErr("CreateTruck", t.TruckNumber, err)
	}
	return nil
}

func UpsertTruckInTx(tx *sqlx.Tx, t model.Truck) error {
	const q = `
		INSERT INTO trucks (id, truck_number, capacity, driver_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(truck_number) DO UPDATE SET
			capacity = excluded.capacity,
			driver_name = excluded.driver_name
	`
	if _, err := tx.Exec(q, newID(), t.TruckNumber, t.Capacity, t.DriverName); err != nil {
		return fmt.Errorf("UpsertTruckInTx (Number: %s) failed: %w", t.TruckNumber, err)
	}
	return nil
}
