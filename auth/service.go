// Package auth handles accounts, sessions and the demo owner login.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"detergent/config"
	"detergent/database"
	"detergent/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// hashCost is lowered in tests.
var hashCost = bcrypt.DefaultCost

type Service struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: a valid email is required", model.ErrValidation)
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", model.ErrValidation, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// SignUp registers a new account. An empty role means staff.
func (s *Service) SignUp(email, password, name, role string) (model.User, error) {
	var u model.User
	var err error
	if u.Email, err = normalizeEmail(email); err != nil {
		return u, err
	}
	if role == "" {
		role = model.RoleStaff
	}
	if !model.ValidRole(role) {
		return u, fmt.Errorf("%w: role must be owner or staff", model.ErrValidation)
	}
	if u.PasswordHash, err = hashPassword(password); err != nil {
		return u, err
	}
	u.Name = strings.TrimSpace(name)
	u.Role = role

	if err := database.CreateUser(s.db, &u); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return u, ErrEmailTaken
		}
		return u, err
	}
	zap.L().Info("user signed up", zap.String("email", u.Email), zap.String("role", u.Role))
	return u, nil
}

// SignIn checks the password and opens a session. Unknown emails and wrong passwords
// both return ErrInvalidCredentials.
func (s *Service) SignIn(email, password string) (model.User, model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := database.GetUserByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return u, model.Session{}, ErrInvalidCredentials
		}
		return u, model.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return model.User{}, model.Session{}, ErrInvalidCredentials
	}

	ttl := config.GetConfig().SessionDuration()
	sess, err := database.CreateSession(s.db, u.ID, s.now().Add(ttl))
	if err != nil {
		return u, sess, err
	}
	return u, sess, nil
}

// SignOut ends the session. Unknown tokens are ignored.
func (s *Service) SignOut(token string) error {
	return database.DeleteSession(s.db, token)
}

// Authenticate resolves the user behind a session token. Expired sessions are removed.
func (s *Service) Authenticate(token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUnauthenticated
	}
	sess, err := database.GetSession(s.db, token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return model.User{}, ErrUnauthenticated
		}
		return model.User{}, err
	}
	if sess.Expired(s.now()) {
		if err := database.DeleteSession(s.db, token); err != nil {
			zap.L().Warn("failed to delete expired session", zap.Error(err))
		}
		return model.User{}, ErrSessionExpired
	}
	u, err := database.GetUserByID(s.db, sess.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return u, ErrUnauthenticated
		}
		return u, err
	}
	return u, nil
}

// EnsureDemoUser creates the demo owner, or resets its password, name and role if it exists.
func (s *Service) EnsureDemoUser() (model.User, error) {
	cfg := config.GetConfig()
	if !cfg.DemoEnabled() {
		return model.User{}, ErrDemoDisabled
	}
	demo := cfg.Auth.Demo
	email, err := normalizeEmail(demo.Email)
	if err != nil {
		return model.User{}, err
	}
	hash, err := hashPassword(demo.Password)
	if err != nil {
		return model.User{}, err
	}
	return database.UpsertUser(s.db, model.User{
		Email:        email,
		Name:         demo.Name,
		Role:         model.RoleOwner,
		PasswordHash: hash,
	})
}

// DemoLogin makes sure the demo owner exists and signs in as it.
func (s *Service) DemoLogin() (model.User, model.Session, error) {
	if _, err := s.EnsureDemoUser(); err != nil {
		return model.User{}, model.Session{}, err
	}
	demo := config.GetConfig().Auth.Demo
	return s.SignIn(demo.Email, demo.Password)
}

// ResetDemoUser deletes the demo owner with its sessions and creates it again.
func (s *Service) ResetDemoUser() (model.User, error) {
	cfg := config.GetConfig()
	if !cfg.DemoEnabled() {
		return model.User{}, ErrDemoDisabled
	}
	email, err := normalizeEmail(cfg.Auth.Demo.Email)
	if err != nil {
		return model.User{}, err
	}
	if err := database.DeleteUserByEmail(s.db, email); err != nil {
		return model.User{}, err
	}
	zap.L().Info("demo user reset", zap.String("email", email))
	return s.EnsureDemoUser()
}
