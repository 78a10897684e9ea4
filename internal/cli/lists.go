package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

func newListsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show all todo lists, unfinished first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				lists, err := st.SortedTodoLists(ctx)
				if err != nil {
					return sysError(err)
				}

				if a.jsonMode {
					views := make([]listView, len(lists))
					for i, l := range lists {
						views[i] = newListView(l, l.Todos)
					}
					return writeJSON(cmd.OutOrStdout(), views)
				}

				out := cmd.OutOrStdout()
				if len(lists) == 0 {
					fmt.Fprintln(out, "No todo lists.")
					return nil
				}
				for _, l := range lists {
					undone := newListView(l, l.Todos).Undone
					fmt.Fprintf(out, "%s %4d  %s (%d/%d)\n",
						checkbox(st.IsDoneTodoList(l)), l.ID, l.Title, undone, len(l.Todos))
				}
				return nil
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <list>",
		Short: "Show one todo list with its todos, unfinished first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				list, err := resolveList(ctx, st, args[0])
				if err != nil {
					return err
				}
				todos, err := st.SortedTodos(ctx, list)
				if err != nil {
					return sysError(err)
				}

				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), newListView(list, todos))
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s (id %d)\n", checkbox(st.IsDoneTodoList(list)), list.Title, list.ID)
				if len(todos) == 0 {
					fmt.Fprintln(out, "  There are no todos in this list.")
					return nil
				}
				for _, t := range todos {
					fmt.Fprintf(out, "  %s %4d  %s\n", checkbox(t.Done), t.ID, t.Title)
				}
				return nil
			})
		},
	}
}
