package database

import (
	"database/sql"
	"errors"
	"fmt"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

func GetAllProducts(db *sqlx.DB, q string) ([]model.Product, error) {
	query := `SELECT id, name, type, unit_price FROM products WHERE 1=1`
	var args []interface{}
	if q != "" {
		query += ` AND (name LIKE ? OR type LIKE ?)`
		args = append(args, likeArg(q), likeArg(q))
	}
	query += ` ORDER BY name`

	products := []model.Product{}
	if err := db.Select(&products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func GetProductByID(db *sqlx.DB, id string) (model.Product, error) {
	var p model.Product
	err := db.Get(&p, `SELECT id, name, type, unit_price FROM products WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return p, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

func CreateProduct(db *sqlx.DB, p *model.Product) error {
	p.ID = newID()
	const q = `INSERT INTO products (id, name, type, unit_price) VALUES (:id, :name, :type, :unit_price)`
	if _, err := db.NamedExec(q, p); err != nil {
		return insertErr("CreateProduct", p.Name, err)
	}
	return nil
}

func UpsertProductInTx(tx *sqlx.Tx, p model.Product) error {
	const q = `
		INSERT INTO products (id, name, type, unit_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			type = excluded.type,
			unit_price = excluded.unit_price
	`
	if _, err := tx.Exec(q, newID(), p.Name, p.Type, p.UnitPrice); err != nil {
		return fmt.Errorf("UpsertProductInTx (Name: %s) failed: %w", p.Name, err)
	}
	return nil
}
