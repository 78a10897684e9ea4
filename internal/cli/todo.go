package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <title>",
		Short: "Add a todo to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := validTitle(args[1])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				list, err := resolveList(ctx, st, args[0])
				if err != nil {
					return err
				}
				ok, err := st.AddTodo(ctx, list.ID, title)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return userError(fmt.Errorf("todo list %d: %w", list.ID, types.ErrNotFound))
				}
				return a.report(cmd,
					result{Action: "added", ListID: list.ID, Title: title},
					fmt.Sprintf("The todo %q was added to %q.", title, list.Title))
			})
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <list> <todo>",
		Short: "Flip a todo between done and not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				list, err := resolveList(ctx, st, args[0])
				if err != nil {
					return err
				}
				todo, err := resolveTodo(list, args[1])
				if err != nil {
					return err
				}
				ok, err := st.ToggleTodo(ctx, list.ID, todo.ID)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return userError(fmt.Errorf("todo %d: %w", todo.ID, types.ErrNotFound))
				}

				done := !todo.Done
				msg := fmt.Sprintf("%q marked as done.", todo.Title)
				if !done {
					msg = fmt.Sprintf("%q marked as not done.", todo.Title)
				}
				return a.report(cmd,
					result{Action: "toggled", ListID: list.ID, TodoID: todo.ID, Title: todo.Title, Done: &done},
					msg)
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list> <todo>",
		Short: "Delete a todo from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				list, err := resolveList(ctx, st, args[0])
				if err != nil {
					return err
				}
				todo, err := resolveTodo(list, args[1])
				if err != nil {
					return err
				}
				ok, err := st.DeleteTodo(ctx, list.ID, todo.ID)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return userError(fmt.Errorf("todo %d: %w", todo.ID, types.ErrNotFound))
				}
				return a.report(cmd,
					result{Action: "removed", ListID: list.ID, TodoID: todo.ID, Title: todo.Title},
					fmt.Sprintf("The todo %q has been deleted.", todo.Title))
			})
		},
	}
}
