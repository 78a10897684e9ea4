package types

import "context"

// Store is the data-access contract consumed by the command layer. Every
// backend (session, unscoped SQLite, user-scoped SQLite) implements it with
// identical semantics so callers stay agnostic to the backend in use.
//
// Lookups signal a missing list or todo with ErrNotFound. Mutations report
// a missing target as (false, nil); the error return is reserved for
// unclassified backend failures.
type Store interface {
	// LoadTodoList returns a copy of the list with its todos.
	LoadTodoList(ctx context.Context, id int64) (*TodoList, error)

	// LoadTodo returns a copy of one todo of a list.
	LoadTodo(ctx context.Context, listID, todoID int64) (*Todo, error)

	// IsDoneTodoList reports whether the list is done (see TodoList.IsDone).
	IsDoneTodoList(list *TodoList) bool

	// HasUndoneTodos reports whether any todo of the list is not done.
	HasUndoneTodos(list *TodoList) bool

	// SortedTodoLists returns every visible list, undone lists first, each
	// group ordered by case-insensitive title.
	SortedTodoLists(ctx context.Context) ([]*TodoList, error)

	// SortedTodos returns the todos of a list, undone first, each group
	// ordered by case-insensitive title.
	SortedTodos(ctx context.Context, list *TodoList) ([]Todo, error)

	// ExistsTodoListTitle reports whether a visible list has exactly this title.
	ExistsTodoListTitle(ctx context.Context, title string) (bool, error)

	// DeleteTodoList removes a list and its todos.
	DeleteTodoList(ctx context.Context, id int64) (bool, error)

	// CreateTodoList adds an empty list. A duplicate title for the same owner
	// reports false without an error.
	CreateTodoList(ctx context.Context, title string) (bool, error)

	// ToggleTodo flips the done flag of a todo.
	ToggleTodo(ctx context.Context, listID, todoID int64) (bool, error)

	// DeleteTodo removes one todo from a list.
	DeleteTodo(ctx context.Context, listID, todoID int64) (bool, error)

	// AddTodo appends a new, undone todo to a list.
	AddTodo(ctx context.Context, listID int64, title string) (bool, error)

	// CompleteAllTodos marks every todo of a list done.
	CompleteAllTodos(ctx context.Context, listID int64) (bool, error)

	// SetTodoListTitle renames a list.
	SetTodoListTitle(ctx context.Context, listID int64, title string) (bool, error)
}

// Authenticator verifies user credentials. Only the multi-user SQLite
// backend provides one.
type Authenticator interface {
	// IsValidLogin reports whether the password matches the stored hash for
	// username. Unknown users and wrong passwords are indistinguishable.
	IsValidLogin(ctx context.Context, username, password string) (bool, error)
}
