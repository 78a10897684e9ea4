package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// storeVariants returns an unscoped store and a store scoped to a freshly
// added user, each on its own backend.
func storeVariants(t *testing.T) map[string]*TodoStore {
	t.Helper()

	unscoped, err := setupBackend(t).Unscoped(context.Background())
	require.NoError(t, err)

	b := setupBackend(t)
	require.NoError(t, b.Users().Add(context.Background(), "alice", "secret"))
	scoped, err := b.ForUser("alice")
	require.NoError(t, err)

	return map[string]*TodoStore{"unscoped": unscoped, "user-scoped": scoped}
}

// listID returns the ID of the visible list with the given title.
func listID(t *testing.T, st *TodoStore, title string) int64 {
	t.Helper()
	lists, err := st.SortedTodoLists(context.Background())
	require.NoError(t, err)
	for _, l := range lists {
		if l.Title == title {
			return l.ID
		}
	}
	t.Fatalf("list %q not found", title)
	return 0
}

func createList(t *testing.T, st *TodoStore, title string) int64 {
	t.Helper()
	ok, err := st.CreateTodoList(context.Background(), title)
	require.NoError(t, err)
	require.True(t, ok)
	return listID(t, st, title)
}

func addTodo(t *testing.T, st *TodoStore, id int64, title string) int64 {
	t.Helper()
	ok, err := st.AddTodo(context.Background(), id, title)
	require.NoError(t, err)
	require.True(t, ok)
	list, err := st.LoadTodoList(context.Background(), id)
	require.NoError(t, err)
	var newest int64
	for _, td := range list.Todos {
		newest = max(newest, td.ID)
	}
	return newest
}

func TestTodoStore_GroceriesScenario(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id := createList(t, st, "Groceries")
			milk := addTodo(t, st, id, "Milk")

			list, err := st.LoadTodoList(ctx, id)
			require.NoError(t, err)
			todos, err := st.SortedTodos(ctx, list)
			require.NoError(t, err)
			require.Len(t, todos, 1)
			assert.Equal(t, "Milk", todos[0].Title)
			assert.False(t, todos[0].Done)

			ok, err := st.ToggleTodo(ctx, id, milk)
			require.NoError(t, err)
			assert.True(t, ok)

			todo, err := st.LoadTodo(ctx, id, milk)
			require.NoError(t, err)
			assert.True(t, todo.Done)
			assert.Equal(t, id, todo.TodoListID)

			addTodo(t, st, id, "Eggs")
			ok, err = st.CompleteAllTodos(ctx, id)
			require.NoError(t, err)
			assert.True(t, ok)

			list, err = st.LoadTodoList(ctx, id)
			require.NoError(t, err)
			require.Len(t, list.Todos, 2)
			for _, td := range list.Todos {
				assert.True(t, td.Done)
			}
			assert.True(t, st.IsDoneTodoList(list))
			assert.False(t, st.HasUndoneTodos(list))
		})
	}
}

func TestTodoStore_DuplicateTitle(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			createList(t, st, "A")

			exists, err := st.ExistsTodoListTitle(ctx, "A")
			require.NoError(t, err)
			assert.True(t, exists)

			ok, err := st.CreateTodoList(ctx, "A")
			assert.NoError(t, err, "duplicate is not surfaced as an error")
			assert.False(t, ok)

			lists, err := st.SortedTodoLists(ctx)
			require.NoError(t, err)
			assert.Len(t, lists, 1)
		})
	}
}

func TestTodoStore_RenameOntoExistingTitle(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			createList(t, st, "A")
			b := createList(t, st, "B")

			ok, err := st.SetTodoListTitle(ctx, b, "A")
			assert.NoError(t, err)
			assert.False(t, ok)

			ok, err = st.SetTodoListTitle(ctx, b, "C")
			require.NoError(t, err)
			assert.True(t, ok)

			list, err := st.LoadTodoList(ctx, b)
			require.NoError(t, err)
			assert.Equal(t, "C", list.Title)

			ok, err = st.SetTodoListTitle(ctx, 9999, "D")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestTodoStore_DeleteTodoListCascades(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := createList(t, st, "Work")
			addTodo(t, st, id, "Report")
			addTodo(t, st, id, "Email")

			ok, err := st.DeleteTodoList(ctx, id)
			require.NoError(t, err)
			assert.True(t, ok)

			_, err = st.LoadTodoList(ctx, id)
			assert.ErrorIs(t, err, types.ErrNotFound)

			db, err := st.backend.conn()
			require.NoError(t, err)
			var orphans int
			require.NoError(t, db.QueryRow("SELECT count(*) FROM todos WHERE todolist_id = ?", id).Scan(&orphans))
			assert.Zero(t, orphans, "todos must cascade")

			ok, err = st.DeleteTodoList(ctx, id)
			require.NoError(t, err)
			assert.False(t, ok, "deleting a missing list reports false")
		})
	}
}

func TestTodoStore_MissingTargets(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := createList(t, st, "Work")

			_, err := st.LoadTodoList(ctx, 9999)
			assert.ErrorIs(t, err, types.ErrNotFound)
			_, err = st.LoadTodo(ctx, id, 9999)
			assert.ErrorIs(t, err, types.ErrNotFound)

			for _, run := range []func() (bool, error){
				func() (bool, error) { return st.ToggleTodo(ctx, id, 9999) },
				func() (bool, error) { return st.ToggleTodo(ctx, 9999, 1) },
				func() (bool, error) { return st.DeleteTodo(ctx, id, 9999) },
				func() (bool, error) { return st.AddTodo(ctx, 9999, "x") },
				func() (bool, error) { return st.CompleteAllTodos(ctx, 9999) },
			} {
				ok, err := run()
				assert.NoError(t, err)
				assert.False(t, ok)
			}

			db, err := st.backend.conn()
			require.NoError(t, err)
			var rows int
			require.NoError(t, db.QueryRow("SELECT count(*) FROM todos").Scan(&rows))
			assert.Zero(t, rows, "failed mutations must not create rows")
		})
	}
}

func TestTodoStore_ToggleTwiceRestores(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := createList(t, st, "Work")
			todoID := addTodo(t, st, id, "Report")

			for i := 0; i < 2; i++ {
				ok, err := st.ToggleTodo(ctx, id, todoID)
				require.NoError(t, err)
				require.True(t, ok)
			}
			todo, err := st.LoadTodo(ctx, id, todoID)
			require.NoError(t, err)
			assert.False(t, todo.Done)
		})
	}
}

func TestTodoStore_DeleteTodo(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := createList(t, st, "Work")
			first := addTodo(t, st, id, "First")
			addTodo(t, st, id, "Second")

			ok, err := st.DeleteTodo(ctx, id, first)
			require.NoError(t, err)
			assert.True(t, ok)

			list, err := st.LoadTodoList(ctx, id)
			require.NoError(t, err)
			require.Len(t, list.Todos, 1)
			assert.Equal(t, "Second", list.Todos[0].Title)
		})
	}
}

func TestTodoStore_CompleteAllOnEmptyList(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := createList(t, st, "Empty")

			ok, err := st.CompleteAllTodos(ctx, id)
			require.NoError(t, err)
			assert.True(t, ok, "zero todos updated out of zero")

			list, err := st.LoadTodoList(ctx, id)
			require.NoError(t, err)
			assert.False(t, st.IsDoneTodoList(list), "empty list is never done")
		})
	}
}

func TestTodoStore_SortedTodoLists(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			done := createList(t, st, "alpha done")
			addTodo(t, st, done, "x")
			_, err := st.CompleteAllTodos(ctx, done)
			require.NoError(t, err)
			createList(t, st, "zulu")
			bravo := createList(t, st, "Bravo")
			addTodo(t, st, bravo, "pending")
			other := createList(t, st, "Charlie done")
			addTodo(t, st, other, "y")
			_, err = st.CompleteAllTodos(ctx, other)
			require.NoError(t, err)

			lists, err := st.SortedTodoLists(ctx)
			require.NoError(t, err)
			got := make([]string, len(lists))
			for i, l := range lists {
				got[i] = l.Title
			}
			assert.Equal(t, []string{"Bravo", "zulu", "alpha done", "Charlie done"}, got)
			assert.Len(t, lists[0].Todos, 1, "todos are joined onto their list")
			assert.NotNil(t, lists[1].Todos)

			again, err := st.SortedTodoLists(ctx)
			require.NoError(t, err)
			assert.Equal(t, lists, again)
		})
	}
}

func TestTodoStore_SortedTodos(t *testing.T) {
	for name, st := range storeVariants(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := createList(t, st, "Shopping")
			bread := addTodo(t, st, id, "bread")
			addTodo(t, st, id, "cheese")
			addTodo(t, st, id, "Apples")
			_, err := st.ToggleTodo(ctx, id, bread)
			require.NoError(t, err)

			todos, err := st.SortedTodos(ctx, &types.TodoList{ID: id})
			require.NoError(t, err)
			got := make([]string, len(todos))
			for i, td := range todos {
				got[i] = td.Title
			}
			assert.Equal(t, []string{"Apples", "cheese", "bread"}, got)
		})
	}
}

func TestTodoStore_OwnerIsolation(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	users := b.Users()
	require.NoError(t, users.Add(ctx, "alice", "a-pass"))
	require.NoError(t, users.Add(ctx, "bob", "b-pass"))

	alice, err := b.ForUser("alice")
	require.NoError(t, err)
	bob, err := b.ForUser("bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", alice.Owner())

	aliceList := createList(t, alice, "Shared name")
	aliceTodo := addTodo(t, alice, aliceList, "private")

	ok, err := bob.CreateTodoList(ctx, "Shared name")
	require.NoError(t, err)
	assert.True(t, ok, "titles are unique per owner only")

	lists, err := bob.SortedTodoLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.NotEqual(t, aliceList, lists[0].ID)

	_, err = bob.LoadTodoList(ctx, aliceList)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = bob.LoadTodo(ctx, aliceList, aliceTodo)
	assert.ErrorIs(t, err, types.ErrNotFound)

	for _, run := range []func() (bool, error){
		func() (bool, error) { return bob.ToggleTodo(ctx, aliceList, aliceTodo) },
		func() (bool, error) { return bob.DeleteTodo(ctx, aliceList, aliceTodo) },
		func() (bool, error) { return bob.AddTodo(ctx, aliceList, "intruder") },
		func() (bool, error) { return bob.CompleteAllTodos(ctx, aliceList) },
		func() (bool, error) { return bob.SetTodoListTitle(ctx, aliceList, "stolen") },
		func() (bool, error) { return bob.DeleteTodoList(ctx, aliceList) },
	} {
		ok, err := run()
		require.NoError(t, err)
		assert.False(t, ok)
	}

	list, err := alice.LoadTodoList(ctx, aliceList)
	require.NoError(t, err)
	assert.Equal(t, "Shared name", list.Title)
	require.Len(t, list.Todos, 1)
	assert.False(t, list.Todos[0].Done)
}

func TestTodoStore_UnscopedTitlesAreGlobal(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	a, err := b.Unscoped(ctx)
	require.NoError(t, err)
	c, err := b.Unscoped(ctx)
	require.NoError(t, err)

	createList(t, a, "Only once")
	ok, err := c.CreateTodoList(ctx, "Only once")
	require.NoError(t, err)
	assert.False(t, ok)
}
