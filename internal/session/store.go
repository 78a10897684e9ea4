package session

import (
	"context"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store implements types.Store over one Session. Build one per request with
// NewStore; it holds no state of its own.
type Store struct {
	s *Session
}

// NewStore returns a Store bound to s.
func NewStore(s *Session) *Store {
	return &Store{s: s}
}

// LoadTodoList returns a deep copy of the list, or ErrNotFound.
func (st *Store) LoadTodoList(_ context.Context, id int64) (*types.TodoList, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(id)
	if i < 0 {
		return nil, types.ErrNotFound
	}
	return st.s.lists[i].Clone(), nil
}

// LoadTodo returns a copy of the todo, or ErrNotFound when either the list
// or the todo is missing.
func (st *Store) LoadTodo(_ context.Context, listID, todoID int64) (*types.Todo, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(listID)
	if i < 0 {
		return nil, types.ErrNotFound
	}
	list := st.s.lists[i]
	j := list.FindTodo(todoID)
	if j < 0 {
		return nil, types.ErrNotFound
	}
	todo := list.Todos[j]
	return &todo, nil
}

func (st *Store) IsDoneTodoList(list *types.TodoList) bool {
	return list.IsDone()
}

func (st *Store) HasUndoneTodos(list *types.TodoList) bool {
	return list.HasUndoneTodos()
}

// SortedTodoLists returns deep copies of all lists, undone first.
func (st *Store) SortedTodoLists(_ context.Context) ([]*types.TodoList, error) {
	undone, done := types.PartitionTodoLists(st.s.Lists())
	return types.SortByTitle(undone, done), nil
}

// SortedTodos returns copies of the list's current todos, undone first. An
// unknown list yields no todos.
func (st *Store) SortedTodos(_ context.Context, list *types.TodoList) ([]types.Todo, error) {
	if list == nil {
		return []types.Todo{}, nil
	}
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(list.ID)
	if i < 0 {
		return []types.Todo{}, nil
	}
	undone, done := types.PartitionTodos(st.s.lists[i].Todos)
	return types.SortByTitle(undone, done), nil
}

func (st *Store) ExistsTodoListTitle(_ context.Context, title string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	for _, l := range st.s.lists {
		if l.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (st *Store) DeleteTodoList(_ context.Context, id int64) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(id)
	if i < 0 {
		return false, nil
	}
	st.s.lists = append(st.s.lists[:i], st.s.lists[i+1:]...)
	return true, nil
}

// CreateTodoList always succeeds; callers check ExistsTodoListTitle first.
func (st *Store) CreateTodoList(_ context.Context, title string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	st.s.lists = append(st.s.lists, &types.TodoList{
		ID:    st.s.ids.Next(),
		Title: title,
		Todos: []types.Todo{},
	})
	return true, nil
}

func (st *Store) ToggleTodo(_ context.Context, listID, todoID int64) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	todo := st.s.todo(listID, todoID)
	if todo == nil {
		return false, nil
	}
	todo.Done = !todo.Done
	return true, nil
}

func (st *Store) DeleteTodo(_ context.Context, listID, todoID int64) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(listID)
	if i < 0 {
		return false, nil
	}
	list := st.s.lists[i]
	j := list.FindTodo(todoID)
	if j == -1 {
		return false, nil
	}
	list.Todos = append(list.Todos[:j], list.Todos[j+1:]...)
	return true, nil
}

func (st *Store) AddTodo(_ context.Context, listID int64, title string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(listID)
	if i < 0 {
		return false, nil
	}
	list := st.s.lists[i]
	list.Todos = append(list.Todos, types.Todo{
		ID:         st.s.ids.Next(),
		Title:      title,
		TodoListID: list.ID,
	})
	return true, nil
}

func (st *Store) CompleteAllTodos(_ context.Context, listID int64) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(listID)
	if i < 0 {
		return false, nil
	}
	todos := st.s.lists[i].Todos
	for j := range todos {
		todos[j].Done = true
	}
	return true, nil
}

func (st *Store) SetTodoListTitle(_ context.Context, listID int64, title string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	i := st.s.findList(listID)
	if i < 0 {
		return false, nil
	}
	st.s.lists[i].Title = title
	return true, nil
}
