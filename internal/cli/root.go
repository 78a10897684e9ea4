// Package cli implements the todolists command-line interface. Each
// invocation is one request: it resolves configuration, opens one store on
// the configured backend, runs a single operation and renders the result.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todolists/internal/log"
	"github.com/mesh-intelligence/todolists/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by input: validation, lookups, credentials.
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// sysError marks err as an environment or storage failure.
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps a command error to a process exit code. Errors raised by
// cobra itself (unknown command, bad flags, wrong arg count) are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// app holds the state shared by the commands of one invocation.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	user      string
	password  string

	config *viper.Viper
}

// NewRootCmd creates the top-level "todolists" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "todolists",
		Short:         "Manage todo lists",
		Long:          "todolists keeps named todo lists in a per-session store or in SQLite,\noptionally scoped to an authenticated user.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	pf.BoolVar(&a.jsonMode, "json", false, "output as JSON")
	pf.StringVar(&a.user, "user", "", "username for multi-user mode")
	pf.StringVar(&a.password, "password", "", "password for --user (or $"+envPassword+")")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListsCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newRenameCmd(a),
		newDeleteCmd(a),
		newCompleteCmd(a),
		newAddCmd(a),
		newToggleCmd(a),
		newRemoveCmd(a),
		newUserCmd(a),
		newExportCmd(a),
	)

	return root
}

// loadConfig resolves the config directory, reads config.yaml and
// configures logging.
func (a *app) loadConfig(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.config = v

	log.Setup(cmd.ErrOrStderr(), v.GetString(cfgKeyLogLevel), v.GetBool(cfgKeyLogPretty))
	log.Debug().
		Str("config_dir", configDir).
		Str("backend", v.GetString(cfgKeyBackend)).
		Str("command", cmd.Name()).
		Msg("config loaded")
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "todolists:", err)
	}
	os.Exit(exitCode(err))
}
