package auth

import "net/http"

// Error is an authentication failure that carries its HTTP status.
type Error struct {
	msg    string
	status int
}

func (e *Error) Error() string   { return e.msg }
func (e *Error) HTTPStatus() int { return e.status }

var (
	ErrInvalidCredentials = &Error{"invalid email or password", http.StatusUnauthorized}
	ErrUnauthenticated    = &Error{"authentication required", http.StatusUnauthorized}
	ErrSessionExpired     = &Error{"session expired", http.StatusUnauthorized}
	ErrForbidden          = &Error{"permission denied", http.StatusForbidden}
	ErrEmailTaken         = &Error{"email already registered", http.StatusConflict}
	ErrDemoDisabled       = &Error{"demo account is disabled", http.StatusNotFound}
)
