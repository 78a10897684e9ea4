package types

import "errors"

// Config holds backend selection and parameters for attaching a store.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	MultiUser bool   `json:"multi_user" yaml:"multi_user"`
}

// Supported backend names.
const (
	BackendSQLite  = "sqlite"
	BackendSession = "session"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrMultiUserScope = errors.New("multi-user mode requires the sqlite backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:  true,
	BackendSession: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.MultiUser && c.Backend != BackendSQLite {
		return ErrMultiUserScope
	}
	return nil
}
