package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// resolveList loads the list named by arg. A numeric arg is tried as an ID
// first; when no list has that ID, arg is matched as an exact title.
func resolveList(ctx context.Context, st types.Store, arg string) (*types.TodoList, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		list, err := st.LoadTodoList(ctx, id)
		if err == nil {
			return list, nil
		}
		if !errors.Is(err, types.ErrNotFound) {
			return nil, sysError(err)
		}
	}

	list, err := findListByTitle(ctx, st, arg)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, userError(fmt.Errorf("todo list %q: %w", arg, missing(arg)))
	}
	return list, nil
}

// missing is the error for an argument that named nothing: ErrInvalidID
// for a number that can never be an ID, ErrNotFound otherwise.
func missing(arg string) error {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id <= 0 {
		return types.ErrInvalidID
	}
	return types.ErrNotFound
}

// findListByTitle returns the visible list whose title is exactly title, or
// nil when there is none.
func findListByTitle(ctx context.Context, st types.Store, title string) (*types.TodoList, error) {
	lists, err := st.SortedTodoLists(ctx)
	if err != nil {
		return nil, sysError(err)
	}
	for _, l := range lists {
		if l.Title == title {
			return l, nil
		}
	}
	return nil, nil
}

// resolveTodo finds the todo named by arg within list. A numeric arg is
// tried as an ID first, then as an exact title.
func resolveTodo(list *types.TodoList, arg string) (types.Todo, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if i := list.FindTodo(id); i >= 0 {
			return list.Todos[i], nil
		}
	}
	for _, t := range list.Todos {
		if t.Title == arg {
			return t, nil
		}
	}
	return types.Todo{}, userError(fmt.Errorf("todo %q in %q: %w", arg, list.Title, missing(arg)))
}

// validTitle trims and validates a title argument.
func validTitle(arg string) (string, error) {
	title, err := types.ValidateTitle(arg)
	if err != nil {
		return "", userError(err)
	}
	return title, nil
}
