package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"detergent/model"

	"github.com/jmoiron/sqlx"
)

// ErrDuplicateEmail is returned when an insert collides with an existing email.
var ErrDuplicateEmail = fmt.Errorf("email %w", ErrDuplicate)

const userColumns = `id, email, name, role, password_hash, created_at`

func GetUserByEmail(db *sqlx.DB, email string) (model.User, error) {
	var u model.User
	err := db.Get(&u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return u, fmt.Errorf("failed to get user %s: %w", email, err)
	}
	return u, nil
}

func GetUserByID(db *sqlx.DB, id string) (model.User, error) {
	var u model.User
	err := db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return u, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return u, nil
}

// CreateUser inserts u, filling its id and creation time.
func CreateUser(db *sqlx.DB, u *model.User) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE email = ?`, u.Email); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if n > 0 {
		return ErrDuplicateEmail
	}

	u.ID = newID()
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	const q = `
		INSERT INTO users (id, email, name, role, password_hash, created_at)
		VALUES (:id, :email, :name, :role, :password_hash, :created_at)`
	if _, err := tx.NamedExec(q, u); err != nil {
		return fmt.Errorf("CreateUser failed: %w", err)
	}
	return tx.Commit()
}

// UpsertUser creates the user with u.Email, or resets the name, role and password of the
// existing one. The stored row is returned.
func UpsertUser(db *sqlx.DB, u model.User) (model.User, error) {
	tx, err := db.Beginx()
	if err != nil {
		return u, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO users (id, email, name, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			password_hash = excluded.password_hash
	`
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(q, newID(), u.Email, u.Name, u.Role, u.PasswordHash, now); err != nil {
		return u, fmt.Errorf("UpsertUser (Email: %s) failed: %w", u.Email, err)
	}

	var stored model.User
	if err := tx.Get(&stored, `SELECT `+userColumns+` FROM users WHERE email = ?`, u.Email); err != nil {
		return u, fmt.Errorf("failed to reload user %s: %w", u.Email, err)
	}
	return stored, tx.Commit()
}

// DeleteUserByEmail removes the user and, through the foreign key, its sessions.
func DeleteUserByEmail(db *sqlx.DB, email string) error {
	if _, err := db.Exec(`DELETE FROM users WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", email, err)
	}
	return nil
}
