package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"detergent/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateSession issues a new random token for userID valid until expiresAt.
func CreateSession(db *sqlx.DB, userID string, expiresAt time.Time) (model.Session, error) {
	s := model.Session{
		Token:     uuid.NewString() + uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}
	const q = `INSERT INTO sessions (token, user_id, expires_at) VALUES (:token, :user_id, :expires_at)`
	if _, err := db.NamedExec(q, s); err != nil {
		return s, fmt.Errorf("CreateSession failed: %w", err)
	}
	return s, nil
}

func GetSession(db *sqlx.DB, token string) (model.Session, error) {
	var s model.Session
	err := db.Get(&s, `SELECT token, user_id, expires_at FROM sessions WHERE token = ?`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, fmt.Errorf("session: %w", ErrNotFound)
		}
		return s, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

func DeleteSession(db *sqlx.DB, token string) error {
	if _, err := db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session that expired before now and reports how many.
func DeleteExpiredSessions(db *sqlx.DB, now time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
