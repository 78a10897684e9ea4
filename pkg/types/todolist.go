package types

// TodoList is a named, owned collection of todos.
type TodoList struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Todos []Todo `json:"todos"`
}

// Todo is a titled, completable unit of work belonging to exactly one list.
type Todo struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Done       bool   `json:"done"`
	TodoListID int64  `json:"todolist_id"`
}

// GetTitle returns the list title. Used by SortByTitle.
func (l *TodoList) GetTitle() string { return l.Title }

// GetTitle returns the todo title. Used by SortByTitle.
func (t Todo) GetTitle() string { return t.Title }

// IsDone reports whether the list has at least one todo and every todo is
// done. An empty list is never done.
func (l *TodoList) IsDone() bool {
	if l == nil || len(l.Todos) == 0 {
		return false
	}
	for _, t := range l.Todos {
		if !t.Done {
			return false
		}
	}
	return true
}

// HasUndoneTodos reports whether any todo in the list is not done.
func (l *TodoList) HasUndoneTodos() bool {
	if l == nil {
		return false
	}
	for _, t := range l.Todos {
		if !t.Done {
			return true
		}
	}
	return false
}

// FindTodo returns the index of the todo with the given ID, or -1.
func (l *TodoList) FindTodo(todoID int64) int {
	for i, t := range l.Todos {
		if t.ID == todoID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the list. Todos is never nil on the copy.
func (l *TodoList) Clone() *TodoList {
	if l == nil {
		return nil
	}
	cp := &TodoList{ID: l.ID, Title: l.Title, Todos: make([]Todo, len(l.Todos))}
	copy(cp.Todos, l.Todos)
	return cp
}
