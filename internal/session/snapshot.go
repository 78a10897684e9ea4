package session

import (
	"github.com/mesh-intelligence/todolists/internal/jsonl"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

// loadSnapshot reads a session snapshot: one TodoList per line.
func loadSnapshot(path string) ([]*types.TodoList, error) {
	records, err := jsonl.Read[*types.TodoList](path)
	if err != nil {
		return nil, err
	}
	lists := records[:0]
	for _, l := range records {
		if l != nil {
			lists = append(lists, l)
		}
	}
	return lists, nil
}

// saveSnapshot writes lists to path atomically.
func saveSnapshot(path string, lists []*types.TodoList) error {
	return jsonl.Write(path, lists)
}
