// Package sqlite implements the relational todolists backend on SQLite.
// Backend owns the database connection; TodoStore is a per-request view
// over it, optionally scoped to one username.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todolists/internal/log"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

// DBFileName is the database file created inside Config.DataDir.
const DBFileName = "todolists.db"

// dsnPragmas are applied to every pooled connection.
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// Backend manages the SQLite connection shared by all stores.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database in config.DataDir, creating the directory and
// schema when needed. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("ensure schema: %w", err)
	}

	b.db = db
	b.attached = true

	log.Debug().Str("path", dbPath).Bool("multi_user", config.MultiUser).Msg("sqlite backend attached")
	return nil
}

// Detach closes the database. Idempotent. After Detach every store built
// from this backend returns ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false

	log.Debug().Msg("sqlite backend detached")
	return nil
}

// Unscoped returns a store that sees every list (the single-user variant).
// Once any user exists it returns ErrUsersExist, since an unscoped store
// would read and modify every user's lists.
func (b *Backend) Unscoped(ctx context.Context) (*TodoStore, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	var users int64
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM users").Scan(&users); err != nil {
		return nil, classify("count users", err)
	}
	if users > 0 {
		return nil, types.ErrUsersExist
	}
	return &TodoStore{backend: b}, nil
}

// ForUser returns a store whose every query is restricted to username's rows.
func (b *Backend) ForUser(username string) (*TodoStore, error) {
	if username == "" {
		return nil, types.ErrInvalidUsername
	}
	if _, err := b.conn(); err != nil {
		return nil, err
	}
	return &TodoStore{backend: b, scope: scope{owner: username, scoped: true}}, nil
}

// Users returns the credential accessor.
func (b *Backend) Users() *Users {
	return &Users{backend: b}
}

// conn returns the live connection or ErrStoreDetached.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// ensureSchema creates tables and indexes in a single transaction.
func ensureSchema(db *sql.DB) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaDDL {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	for _, stmt := range indexDDL {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
