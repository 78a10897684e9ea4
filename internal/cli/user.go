package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/internal/sqlite"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users for multi-user mode",
	}
	cmd.AddCommand(newUserAddCmd(a))
	return cmd
}

func newUserAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user; the password comes from --password or $" + envPassword,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			username := args[0]
			password := a.loginPassword()

			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}
			if cfg.Backend != types.BackendSQLite {
				return userError(types.ErrMultiUserScope)
			}

			backend := sqlite.NewBackend()
			if err := backend.Attach(cfg); err != nil {
				return sysError(fmt.Errorf("attach backend: %w", err))
			}
			defer func() {
				if derr := backend.Detach(); derr != nil && err == nil {
					err = sysError(fmt.Errorf("detach backend: %w", derr))
				}
			}()

			err = backend.Users().Add(cmd.Context(), username, password)
			switch {
			case errors.Is(err, types.ErrInvalidUsername), errors.Is(err, types.ErrInvalidPassword):
				return userError(err)
			case types.IsUniqueConstraintViolation(err):
				return userError(fmt.Errorf("user %q already exists", username))
			case err != nil:
				return sysError(err)
			}
			return a.report(cmd,
				result{Action: "user added", Title: username},
				fmt.Sprintf("User %q added.", username))
		},
	}
}
