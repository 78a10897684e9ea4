package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/pkg/types"
)

// errDuplicateTitle is reported when a list title is already taken.
var errDuplicateTitle = errors.New("the list title must be unique")

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create a todo list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := validTitle(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				exists, err := st.ExistsTodoListTitle(ctx, title)
				if err != nil {
					return sysError(err)
				}
				if exists {
					return userError(fmt.Errorf("%q: %w", title, errDuplicateTitle))
				}

				ok, err := st.CreateTodoList(ctx, title)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return userError(fmt.Errorf("%q: %w", title, errDuplicateTitle))
				}

				list, err := findListByTitle(ctx, st, title)
				if err != nil {
					return err
				}
				if list == nil {
					return sysError(fmt.Errorf("todo list %q: created but not visible", title))
				}
				return a.report(cmd,
					result{Action: "created", ListID: list.ID, Title: list.Title},
					fmt.Sprintf("The list %q has been created (id %d).", list.Title, list.ID))
			})
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list> <title>",
		Short: "Rename a todo list",
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
				if list.Title != title {
					exists, err := st.ExistsTodoListTitle(ctx, title)
					if err != nil {
						return sysError(err)
					}
					if exists {
						return userError(fmt.Errorf("%q: %w", title, errDuplicateTitle))
					}
				}

				ok, err := st.SetTodoListTitle(ctx, list.ID, title)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return userError(fmt.Errorf("%q: %w", title, errDuplicateTitle))
				}
				return a.report(cmd,
					result{Action: "renamed", ListID: list.ID, Title: title},
					fmt.Sprintf("The list has been renamed to %q.", title))
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list>",
		Short: "Delete a todo list and its todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				list, err := resolveList(ctx, st, args[0])
				if err != nil {
					return err
				}
				ok, err := st.DeleteTodoList(ctx, list.ID)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return userError(fmt.Errorf("todo list %d: %w", list.ID, types.ErrNotFound))
				}
				return a.report(cmd,
					result{Action: "deleted", ListID: list.ID, Title: list.Title},
					fmt.Sprintf("The list %q has been deleted.", list.Title))
			})
		},
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <list>",
		Short: "Mark every todo of a list done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, st types.Store) error {
				list, err := resolveList(ctx, st, args[0])
				if err != nil {
					return err
				}
				ok, err := st.CompleteAllTodos(ctx, list.ID)
				if err != nil {
					return sysError(err)
				}
				if !ok {
					return sysError(fmt.Errorf("todo list %d: not every todo could be completed", list.ID))
				}
				done := true
				return a.report(cmd,
					result{Action: "completed", ListID: list.ID, Title: list.Title, Done: &done},
					"All todos have been completed.")
			})
		},
	}
}
