package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/internal/jsonl"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all visible todo lists to a JSONL file, one list per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				lists, err := st.SortedTodoLists(ctx)
				if err != nil {
					return sysError(err)
				}
				for _, l := range lists {
					if l.Todos, err = st.SortedTodos(ctx, l); err != nil {
						return sysError(err)
					}
				}
				if err := jsonl.Write(path, lists); err != nil {
					return sysError(fmt.Errorf("export: %w", err))
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"path": path, "lists": len(lists)})
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lists to %s\n", len(lists), path)
				return err
			})
		},
	}
}
