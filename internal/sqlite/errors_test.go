package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("noop", nil))

	err := classify("plain", errors.New("disk I/O error"))
	var se *types.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, types.KindUnclassified, se.Kind)
	assert.Equal(t, "plain", se.Op)
}

func TestIsUniqueCode(t *testing.T) {
	assert.True(t, isUniqueCode(sqlite3.SQLITE_CONSTRAINT_UNIQUE))
	assert.True(t, isUniqueCode(sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY))
	assert.False(t, isUniqueCode(sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY))
	assert.False(t, isUniqueCode(sqlite3.SQLITE_CONSTRAINT_NOTNULL))
	assert.False(t, isUniqueCode(sqlite3.SQLITE_CONSTRAINT_CHECK))
	assert.False(t, isUniqueCode(sqlite3.SQLITE_CONSTRAINT), "only extended codes are classified")
	assert.False(t, isUniqueCode(sqlite3.SQLITE_BUSY))
}

func TestClassify_DriverErrors(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	db, err := b.conn()
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO todolists (title) VALUES ('dup')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO todolists (title) VALUES ('dup')")
	require.Error(t, err)
	assert.True(t, types.IsUniqueConstraintViolation(classify("insert", err)))

	_, err = db.ExecContext(ctx, "INSERT INTO todos (title, todolist_id) VALUES ('orphan', 12345)")
	require.Error(t, err, "foreign keys are enforced")
	assert.False(t, types.IsUniqueConstraintViolation(classify("insert", err)))

	_, err = db.ExecContext(ctx, "INSERT INTO todolists (title) VALUES (NULL)")
	require.Error(t, err, "title is NOT NULL")
	assert.False(t, types.IsUniqueConstraintViolation(classify("insert", err)))
}
