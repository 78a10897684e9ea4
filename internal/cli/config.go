package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/todolists/internal/paths"
	"github.com/mesh-intelligence/todolists/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyMultiUser = "multi_user"
	cfgKeySession   = "session"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogPretty = "log_pretty"
	cfgKeyPassword  = "password"

	envPrefix   = "TODOLISTS"
	envPassword = "TODOLISTS_PASSWORD"

	defaultBackend  = types.BackendSQLite
	defaultSession  = "local"
	defaultLogLevel = "warn"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	MultiUser bool   `yaml:"multi_user"`
	Session   string `yaml:"session,omitempty"`
	LogLevel  string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing file
// is not an error; defaults apply. Every key can also be set through a
// TODOLISTS_<KEY> environment variable.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyMultiUser, false)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogPretty, false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv(cfgKeyPassword, envPassword); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with the given values unless the
// file already exists. It reports whether a file was written.
func writeConfigIfMissing(configDir string, cfg configFile) (bool, error) {
	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// storeConfig builds the backend configuration for this invocation. Passing
// --user turns on multi-user mode even when config.yaml does not.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{
		Backend:   a.config.GetString(cfgKeyBackend),
		DataDir:   dataDir,
		MultiUser: a.config.GetBool(cfgKeyMultiUser) || a.user != "",
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userError(fmt.Errorf("config: %w", err))
	}
	return cfg, nil
}

// sessionID returns the configured session ID. init writes a fresh UUID
// into config.yaml; defaultSession covers config files without one.
func (a *app) sessionID() string {
	if id := a.config.GetString(cfgKeySession); id != "" {
		return id
	}
	return defaultSession
}

// loginPassword returns --password, falling back to TODOLISTS_PASSWORD.
func (a *app) loginPassword() string {
	if a.password != "" {
		return a.password
	}
	return a.config.GetString(cfgKeyPassword)
}
