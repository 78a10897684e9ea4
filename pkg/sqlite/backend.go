// Package sqlite is the public entry point to the relational todo list
// store. The implementation lives in internal/sqlite; this package only
// exposes the constructor.
package sqlite

import (
	"github.com/mesh-intelligence/todolists/internal/sqlite"
)

// Backend is the attachable SQLite store. Obtain per-request stores with
// Unscoped or ForUser after Attach.
type Backend = sqlite.Backend

// NewBackend creates a detached SQLite backend.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".todolists-db",
//	})
//	defer backend.Detach()
//	store, err := backend.ForUser("alice")
func NewBackend() *Backend {
	return sqlite.NewBackend()
}
