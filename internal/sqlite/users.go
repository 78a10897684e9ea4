package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/todolists/internal/log"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

// Compile-time interface check.
var _ types.Authenticator = (*Users)(nil)

// Users reads and writes the credential table.
type Users struct {
	backend *Backend
}

// Add stores a new user with a bcrypt hash of password. An existing
// username yields a StoreError of kind KindUniqueViolation.
func (u *Users) Add(ctx context.Context, username, password string) error {
	if username == "" {
		return types.ErrInvalidUsername
	}
	if password == "" {
		return types.ErrInvalidPassword
	}
	db, err := u.backend.conn()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)", username, string(hash)); err != nil {
		return classify("insert user", err)
	}
	log.Info().Str("username", username).Msg("user added")
	return nil
}

// IsValidLogin compares password against the stored hash. Unknown users
// fail closed.
func (u *Users) IsValidLogin(ctx context.Context, username, password string) (bool, error) {
	db, err := u.backend.conn()
	if err != nil {
		return false, err
	}
	var hash string
	err = db.QueryRowContext(ctx, "SELECT password FROM users WHERE username = ?", username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classify("select user", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}
