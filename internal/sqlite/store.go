package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/todolists/internal/log"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*TodoStore)(nil)

// TodoStore implements types.Store with parameterized SQL. The unscoped
// variant sees every row; the user-scoped variant adds a username predicate
// to every statement. Build one per request from Backend.Unscoped or
// Backend.ForUser.
type TodoStore struct {
	backend *Backend
	scope   scope
}

// Owner returns the username the store is scoped to, or "" when unscoped.
func (st *TodoStore) Owner() string {
	return st.scope.owner
}

func logQuery(kind, query string, args []any) {
	log.Debug().
		Str("kind", kind).
		Str("sql", query).
		Interface("params", args).
		Msg("db query")
}

// exec runs a statement and returns the number of affected rows.
func (st *TodoStore) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	db, err := st.backend.conn()
	if err != nil {
		return 0, err
	}
	logQuery("exec", query, args)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return n, nil
}

// count runs a single-value count query.
func (st *TodoStore) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	db, err := st.backend.conn()
	if err != nil {
		return 0, err
	}
	logQuery("count", query, args)
	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify(op, err)
	}
	return n, nil
}

// queryTodos runs a query selecting id, title, done, todolist_id.
func (st *TodoStore) queryTodos(ctx context.Context, query string, args ...any) ([]types.Todo, error) {
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}
	logQuery("select", query, args)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("select todos", err)
	}
	defer rows.Close()

	todos := []types.Todo{}
	for rows.Next() {
		var t types.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Done, &t.TodoListID); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// LoadTodoList fetches the list row and its todos concurrently.
func (st *TodoStore) LoadTodoList(ctx context.Context, id int64) (*types.TodoList, error) {
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}

	listQuery := "SELECT id, title FROM todolists WHERE id = ?" + st.scope.and()
	todosQuery := "SELECT id, title, done, todolist_id FROM todos WHERE todolist_id = ?" + st.scope.and() + " ORDER BY id"

	var (
		list  *types.TodoList
		todos []types.Todo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		args := st.scope.args(id)
		logQuery("get", listQuery, args)
		var l types.TodoList
		err := db.QueryRowContext(gctx, listQuery, args...).Scan(&l.ID, &l.Title)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return classify("select todolist", err)
		}
		list = &l
		return nil
	})
	g.Go(func() error {
		var err error
		todos, err = st.queryTodos(gctx, todosQuery, st.scope.args(id)...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading todo list %d: %w", id, err)
	}
	if list == nil {
		return nil, types.ErrNotFound
	}
	list.Todos = todos
	return list, nil
}

func (st *TodoStore) LoadTodo(ctx context.Context, listID, todoID int64) (*types.Todo, error) {
	query := "SELECT id, title, done, todolist_id FROM todos WHERE todolist_id = ? AND id = ?" + st.scope.and()
	todos, err := st.queryTodos(ctx, query, st.scope.args(listID, todoID)...)
	if err != nil {
		return nil, fmt.Errorf("loading todo %d: %w", todoID, err)
	}
	if len(todos) == 0 {
		return nil, types.ErrNotFound
	}
	return &todos[0], nil
}

func (st *TodoStore) IsDoneTodoList(list *types.TodoList) bool {
	return list.IsDone()
}

func (st *TodoStore) HasUndoneTodos(list *types.TodoList) bool {
	return list.HasUndoneTodos()
}

// SortedTodoLists relies on the database for title order, then partitions
// the joined lists into undone and done groups.
func (st *TodoStore) SortedTodoLists(ctx context.Context) ([]*types.TodoList, error) {
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}

	listsQuery := "SELECT id, title FROM todolists" + st.scope.where() + " ORDER BY lower(title) ASC"
	todosQuery := "SELECT id, title, done, todolist_id FROM todos" + st.scope.where() + " ORDER BY id"

	var (
		lists []*types.TodoList
		todos []types.Todo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		args := st.scope.args()
		logQuery("select", listsQuery, args)
		rows, err := db.QueryContext(gctx, listsQuery, args...)
		if err != nil {
			return classify("select todolists", err)
		}
		defer rows.Close()
		for rows.Next() {
			l := &types.TodoList{Todos: []types.Todo{}}
			if err := rows.Scan(&l.ID, &l.Title); err != nil {
				return fmt.Errorf("scanning todo list: %w", err)
			}
			lists = append(lists, l)
		}
		return rows.Err()
	})
	g.Go(func() error {
		var err error
		todos, err = st.queryTodos(gctx, todosQuery, st.scope.args()...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading todo lists: %w", err)
	}

	byID := make(map[int64]*types.TodoList, len(lists))
	for _, l := range lists {
		byID[l.ID] = l
	}
	for _, t := range todos {
		if l, ok := byID[t.TodoListID]; ok {
			l.Todos = append(l.Todos, t)
		}
	}

	undone, done := types.PartitionTodoLists(lists)
	return append(undone, done...), nil
}

// SortedTodos returns the list's todos ordered by the database: undone
// first, then case-insensitive title.
func (st *TodoStore) SortedTodos(ctx context.Context, list *types.TodoList) ([]types.Todo, error) {
	if list == nil {
		return []types.Todo{}, nil
	}
	query := "SELECT id, title, done, todolist_id FROM todos WHERE todolist_id = ?" + st.scope.and() +
		" ORDER BY done ASC, lower(title) ASC"
	todos, err := st.queryTodos(ctx, query, st.scope.args(list.ID)...)
	if err != nil {
		return nil, fmt.Errorf("sorting todos of list %d: %w", list.ID, err)
	}
	return todos, nil
}

func (st *TodoStore) ExistsTodoListTitle(ctx context.Context, title string) (bool, error) {
	n, err := st.count(ctx, "count todolists by title",
		"SELECT count(id) FROM todolists WHERE title = ?"+st.scope.and(), st.scope.args(title)...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteTodoList deletes the list (todos cascade) and then confirms no
// matching row remains.
func (st *TodoStore) DeleteTodoList(ctx context.Context, id int64) (bool, error) {
	deleted, err := st.exec(ctx, "delete todolist",
		"DELETE FROM todolists WHERE id = ?"+st.scope.and(), st.scope.args(id)...)
	if err != nil {
		return false, err
	}
	remaining, err := st.count(ctx, "confirm todolist delete",
		"SELECT count(id) FROM todolists WHERE id = ?"+st.scope.and(), st.scope.args(id)...)
	if err != nil {
		return false, err
	}
	return deleted > 0 && remaining == 0, nil
}

// CreateTodoList inserts a list. A duplicate title for the same owner is
// reported as false without an error.
func (st *TodoStore) CreateTodoList(ctx context.Context, title string) (bool, error) {
	_, err := st.exec(ctx, "insert todolist",
		"INSERT INTO todolists (title, username) VALUES (?, ?)", title, st.scope.ownerValue())
	if types.IsUniqueConstraintViolation(err) {
		log.Debug().Str("title", title).Str("owner", st.scope.owner).Msg("duplicate todo list title")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (st *TodoStore) ToggleTodo(ctx context.Context, listID, todoID int64) (bool, error) {
	n, err := st.exec(ctx, "toggle todo",
		"UPDATE todos SET done = NOT done WHERE todolist_id = ? AND id = ?"+st.scope.and(),
		st.scope.args(listID, todoID)...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (st *TodoStore) DeleteTodo(ctx context.Context, listID, todoID int64) (bool, error) {
	n, err := st.exec(ctx, "delete todo",
		"DELETE FROM todos WHERE todolist_id = ? AND id = ?"+st.scope.and(),
		st.scope.args(listID, todoID)...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddTodo inserts through the owning list row, so an unknown or foreign
// list inserts nothing.
func (st *TodoStore) AddTodo(ctx context.Context, listID int64, title string) (bool, error) {
	n, err := st.exec(ctx, "insert todo",
		"INSERT INTO todos (title, todolist_id, username) SELECT ?, id, username FROM todolists WHERE id = ?"+st.scope.and(),
		st.scope.args(title, listID)...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CompleteAllTodos marks every todo of the list done. It succeeds when the
// update touched exactly as many rows as the list holds.
func (st *TodoStore) CompleteAllTodos(ctx context.Context, listID int64) (bool, error) {
	lists, err := st.count(ctx, "count todolist",
		"SELECT count(id) FROM todolists WHERE id = ?"+st.scope.and(), st.scope.args(listID)...)
	if err != nil {
		return false, err
	}
	if lists == 0 {
		return false, nil
	}

	want, err := st.count(ctx, "count todos",
		"SELECT count(id) FROM todos WHERE todolist_id = ?"+st.scope.and(), st.scope.args(listID)...)
	if err != nil {
		return false, err
	}
	got, err := st.exec(ctx, "complete todos",
		"UPDATE todos SET done = true WHERE todolist_id = ?"+st.scope.and(), st.scope.args(listID)...)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

// SetTodoListTitle renames a list. Renaming onto an existing title of the
// same owner is reported as false without an error.
func (st *TodoStore) SetTodoListTitle(ctx context.Context, listID int64, title string) (bool, error) {
	n, err := st.exec(ctx, "rename todolist",
		"UPDATE todolists SET title = ? WHERE id = ?"+st.scope.and(), st.scope.args(title, listID)...)
	if types.IsUniqueConstraintViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
