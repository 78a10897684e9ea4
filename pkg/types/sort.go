package types

import (
	"slices"
	"strings"
)

// Titled is anything ordered by SortByTitle.
type Titled interface {
	GetTitle() string
}

// SortByTitle returns undone followed by done, each group ordered by
// lower-cased title. Equal titles keep their input order. The input slices
// are not modified.
func SortByTitle[T Titled](undone, done []T) []T {
	byTitle := func(a, b T) int {
		return strings.Compare(strings.ToLower(a.GetTitle()), strings.ToLower(b.GetTitle()))
	}
	u := slices.Clone(undone)
	d := slices.Clone(done)
	slices.SortStableFunc(u, byTitle)
	slices.SortStableFunc(d, byTitle)
	return append(u, d...)
}

// PartitionTodoLists splits lists into undone and done groups, keeping the
// input order within each group.
func PartitionTodoLists(lists []*TodoList) (undone, done []*TodoList) {
	for _, l := range lists {
		if l.IsDone() {
			done = append(done, l)
		} else {
			undone = append(undone, l)
		}
	}
	return undone, done
}

// PartitionTodos splits todos by their done flag, keeping input order.
func PartitionTodos(todos []Todo) (undone, done []Todo) {
	for _, t := range todos {
		if t.Done {
			done = append(done, t)
		} else {
			undone = append(undone, t)
		}
	}
	return undone, done
}
