package sqlite

// Schema DDL. Statements are idempotent so Attach can run them on every start.
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    password TEXT NOT NULL
);`

	// username is NULL for lists created through an unscoped store.
	createTodoLists = `CREATE TABLE IF NOT EXISTS todolists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    username TEXT REFERENCES users(username) ON DELETE CASCADE,
    UNIQUE (username, title)
);`

	createTodos = `CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    done BOOLEAN NOT NULL DEFAULT false,
    todolist_id INTEGER NOT NULL REFERENCES todolists(id) ON DELETE CASCADE,
    username TEXT REFERENCES users(username) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	// NULL usernames never collide under UNIQUE (username, title), so
	// unowned titles need their own index.
	idxTodoListsUnownedTitle = `CREATE UNIQUE INDEX IF NOT EXISTS idx_todolists_unowned_title ON todolists(title) WHERE username IS NULL;`
	idxTodoListsUsername     = `CREATE INDEX IF NOT EXISTS idx_todolists_username ON todolists(username);`
	idxTodosTodoList         = `CREATE INDEX IF NOT EXISTS idx_todos_todolist ON todos(todolist_id);`
	idxTodosUsername         = `CREATE INDEX IF NOT EXISTS idx_todos_username ON todos(username);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createTodoLists,
	createTodos,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTodoListsUnownedTitle,
	idxTodoListsUsername,
	idxTodosTodoList,
	idxTodosUsername,
}
