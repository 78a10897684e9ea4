package sqlite

import (
	"errors"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// classify wraps a driver error in a types.StoreError. Uniqueness
// violations are recognized by SQLite result code, never by message text.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := types.KindUnclassified
	var se *msqlite.Error
	if errors.As(err, &se) && isUniqueCode(se.Code()) {
		kind = types.KindUniqueViolation
	}
	return &types.StoreError{Kind: kind, Op: op, Err: err}
}

// isUniqueCode reports whether an extended SQLite result code is a
// uniqueness violation. The driver always enables extended result codes.
func isUniqueCode(code int) bool {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	default:
		return false
	}
}
