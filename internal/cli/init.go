package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolists/internal/paths"
	"github.com/mesh-intelligence/todolists/internal/session"
	"github.com/mesh-intelligence/todolists/internal/sqlite"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Write a default config.yaml if none exists, then create the data directory\nand initialize the configured backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}

			fresh := configFile{
				Backend:   cfg.Backend,
				DataDir:   cfg.DataDir,
				MultiUser: cfg.MultiUser,
				Session:   a.config.GetString(cfgKeySession),
				LogLevel:  a.config.GetString(cfgKeyLogLevel),
			}
			if fresh.Session == "" {
				fresh.Session = session.NewID()
			}
			written, err := writeConfigIfMissing(a.configDir, fresh)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}
			sessionID := a.sessionID()
			if written {
				sessionID = fresh.Session
			}

			if err := initStorage(cfg, sessionID); err != nil {
				return sysError(err)
			}

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"config_dir":     a.configDir,
					"data_dir":       cfg.DataDir,
					"backend":        cfg.Backend,
					"config_written": written,
					"session":        sessionID,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "todolists initialized")
			fmt.Fprintln(out, "  config: ", a.configDir)
			fmt.Fprintln(out, "  data:   ", cfg.DataDir)
			fmt.Fprintln(out, "  backend:", cfg.Backend)
			return nil
		},
	}
}

// initStorage creates the backend's on-disk state: the SQLite schema, or a
// seeded session snapshot.
func initStorage(cfg types.Config, sessionID string) error {
	if cfg.Backend == types.BackendSession {
		path := paths.SessionFile(cfg.DataDir)
		mgr := session.NewManager()
		if _, err := mgr.Restore(sessionID, path); err != nil {
			return err
		}
		return mgr.Save(sessionID, path)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := backend.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}
	return nil
}
