// Package session implements the session-backed todolists store. A Session
// is an explicit, caller-owned handle holding one user's lists in memory;
// Manager keeps sessions by ID and Store exposes the types.Store contract
// over a single Session.
package session

import (
	"sync"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// Session holds the mutable todo lists of one logical session. Every Store
// built over the same Session observes the same state; there is no commit
// step.
type Session struct {
	ID string

	mu    sync.Mutex
	lists []*types.TodoList
	ids   *IDGenerator
}

// newSession builds a session over lists, taking ownership of the slice. The
// identifier generator starts above every list and todo ID present.
func newSession(id string, lists []*types.TodoList) *Session {
	var highest int64
	for _, l := range lists {
		highest = max(highest, l.ID)
		for _, t := range l.Todos {
			highest = max(highest, t.ID)
		}
		if l.Todos == nil {
			l.Todos = []types.Todo{}
		}
	}
	return &Session{ID: id, lists: lists, ids: NewIDGenerator(highest)}
}

// Lists returns a deep copy of the session's lists in insertion order.
func (s *Session) Lists() []*types.TodoList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.TodoList, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}

// findList returns the index of the list with the given ID, or -1.
// The caller must hold s.mu.
func (s *Session) findList(id int64) int {
	for i, l := range s.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// todo returns a pointer into the session's state for the given todo, or
// nil when the list or the todo is missing. The caller must hold s.mu.
func (s *Session) todo(listID, todoID int64) *types.Todo {
	i := s.findList(listID)
	if i < 0 {
		return nil
	}
	list := s.lists[i]
	j := list.FindTodo(todoID)
	if j < 0 {
		return nil
	}
	return &list.Todos[j]
}

// seedLists returns the lists a brand-new session starts with.
func seedLists(ids *IDGenerator) []*types.TodoList {
	mk := func(title string, todos ...types.Todo) *types.TodoList {
		l := &types.TodoList{ID: ids.Next(), Title: title, Todos: []types.Todo{}}
		for _, t := range todos {
			t.ID = ids.Next()
			t.TodoListID = l.ID
			l.Todos = append(l.Todos, t)
		}
		return l
	}
	return []*types.TodoList{
		mk("Work Todos",
			types.Todo{Title: "Get coffee", Done: true},
			types.Todo{Title: "Chat with co-workers", Done: true},
			types.Todo{Title: "Duck out of meeting"},
		),
		mk("Home Todos",
			types.Todo{Title: "Feed the cats", Done: true},
			types.Todo{Title: "Go to bed", Done: true},
			types.Todo{Title: "Buy milk", Done: true},
			types.Todo{Title: "Study for exam", Done: true},
		),
		mk("Additional Todos"),
		mk("social todos",
			types.Todo{Title: "Go to Libby's birthday party"},
		),
	}
}

// newSeededSession returns a session initialized with the seed lists.
func newSeededSession(id string) *Session {
	ids := NewIDGenerator(0)
	lists := seedLists(ids)
	return &Session{ID: id, lists: lists, ids: ids}
}
