package model

import "time"

// Role values accepted for users.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

type User struct {
	ID           string `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	Role         string `db:"role" json:"role"`
	PasswordHash string `db:"password_hash" json:"-"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// Session expiry is stored as unix seconds.
type Session struct {
	Token     string `db:"token" json:"token"`
	UserID    string `db:"user_id" json:"userId"`
	ExpiresAt int64  `db:"expires_at" json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return now.Unix() >= s.ExpiresAt
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleOwner || r == RoleStaff
}
