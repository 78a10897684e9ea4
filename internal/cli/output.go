package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// result is the JSON shape of a mutating command's outcome.
type result struct {
	Action string `json:"action"`
	ListID int64  `json:"list_id,omitempty"`
	TodoID int64  `json:"todo_id,omitempty"`
	Title  string `json:"title,omitempty"`
	Done   *bool  `json:"done,omitempty"`
}

// listView is the JSON shape of a todo list with its derived state.
type listView struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Done   bool         `json:"done"`
	Undone int          `json:"undone"`
	Todos  []types.Todo `json:"todos"`
}

func newListView(l *types.TodoList, todos []types.Todo) listView {
	undone := 0
	for _, t := range todos {
		if !t.Done {
			undone++
		}
	}
	return listView{
		ID:     l.ID,
		Title:  l.Title,
		Done:   l.IsDone(),
		Undone: undone,
		Todos:  todos,
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// report prints a mutation outcome: msg in text mode, r in JSON mode.
func (a *app) report(cmd *cobra.Command, r result, msg string) error {
	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}

// checkbox renders a done flag.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
