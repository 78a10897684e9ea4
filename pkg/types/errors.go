package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Entity errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidTitle = errors.New("invalid title")
	ErrInvalidID    = errors.New("invalid entity ID")
	ErrSessionEmpty = errors.New("session ID must not be empty")
)

// ErrorKind classifies a backend failure.
type ErrorKind int

// Error kinds reported through StoreError.
const (
	KindUnclassified ErrorKind = iota
	KindUniqueViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindUniqueViolation:
		return "unique violation"
	default:
		return "unclassified"
	}
}

// StoreError carries a classified backend failure. Backends translate
// driver-specific errors into a StoreError so callers never inspect driver
// messages.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsUniqueConstraintViolation reports whether err (or anything it wraps) is a
// StoreError of kind KindUniqueViolation.
func IsUniqueConstraintViolation(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind == KindUniqueViolation
	}
	return false
}

// Credential errors.
var (
	ErrUsersExist      = errors.New("users exist; sign in as one of them")
	ErrInvalidUsername = errors.New("username must not be empty")
	ErrInvalidPassword = errors.New("password must not be empty")
)
