package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/internal/log"
	"github.com/mesh-intelligence/todolists/internal/paths"
	"github.com/mesh-intelligence/todolists/internal/session"
	"github.com/mesh-intelligence/todolists/internal/sqlite"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

// errLoginFailed is returned for any rejected credential pair. It never says
// which half was wrong.
var errLoginFailed = errors.New("invalid username or password")

// errLoginRequired is returned in multi-user mode when --user is missing.
var errLoginRequired = errors.New("multi-user mode requires --user")

// withStore opens the configured store, runs fn against it and releases the
// store. Session stores are saved back to their snapshot on success.
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, st types.Store) error) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.Backend {
	case types.BackendSession:
		return a.withSessionStore(ctx, cfg, fn)
	default:
		return a.withSQLiteStore(ctx, cfg, fn)
	}
}

func (a *app) withSessionStore(ctx context.Context, cfg types.Config, fn func(context.Context, types.Store) error) error {
	id := a.sessionID()
	path := paths.SessionFile(cfg.DataDir)

	mgr := session.NewManager()
	s, err := mgr.Restore(id, path)
	if err != nil {
		return sysError(err)
	}
	defer mgr.Close(id)

	log.Debug().Str("session", id).Str("path", path).Msg("session store opened")
	if err := fn(ctx, session.NewStore(s)); err != nil {
		return err
	}
	if err := mgr.Save(id, path); err != nil {
		log.Error().Err(err).Str("session", id).Str("path", path).Msg("session save failed")
		return sysError(fmt.Errorf("save session: %w", err))
	}
	return nil
}

func (a *app) withSQLiteStore(ctx context.Context, cfg types.Config, fn func(context.Context, types.Store) error) (err error) {
	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return sysError(fmt.Errorf("attach backend: %w", err))
	}
	defer func() {
		if derr := backend.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach backend: %w", derr))
		}
	}()

	var st *sqlite.TodoStore
	if cfg.MultiUser {
		st, err = a.login(ctx, backend)
	} else {
		st, err = backend.Unscoped(ctx)
		switch {
		case errors.Is(err, types.ErrUsersExist):
			err = userError(fmt.Errorf("%w: %w", errLoginRequired, err))
		case err != nil:
			err = sysError(err)
		}
	}
	if err != nil {
		return err
	}
	return fn(ctx, st)
}

// login checks the --user credentials and returns a store scoped to that
// user.
func (a *app) login(ctx context.Context, backend *sqlite.Backend) (*sqlite.TodoStore, error) {
	if a.user == "" {
		return nil, userError(errLoginRequired)
	}
	ok, err := backend.Users().IsValidLogin(ctx, a.user, a.loginPassword())
	if err != nil {
		return nil, sysError(fmt.Errorf("login: %w", err))
	}
	if !ok {
		log.Warn().Str("username", a.user).Msg("login rejected")
		return nil, userError(errLoginFailed)
	}
	st, err := backend.ForUser(a.user)
	if err != nil {
		return nil, sysError(err)
	}
	log.Debug().Str("owner", st.Owner()).Msg("login accepted")
	return st, nil
}
