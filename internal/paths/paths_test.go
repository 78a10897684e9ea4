package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPlatform replaces the home and user-config lookups for one test.
func stubPlatform(t *testing.T, home, userConfig string, err error) {
	t.Helper()
	orig := platformDir
	platformDir.homeDir = func() (string, error) { return home, err }
	platformDir.userConfigDir = func() (string, error) { return userConfig, err }
	t.Cleanup(func() { platformDir = orig })
}

func TestDefaultDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	tests := []struct {
		name       string
		xdgConfig  string
		xdgData    string
		wantConfig string
		wantData   string
	}{
		{
			name:       "home fallbacks when XDG unset",
			wantConfig: "/home/u/.config/todolists",
			wantData:   "/home/u/.local/share/todolists",
		},
		{
			name:       "XDG variables override home",
			xdgConfig:  "/xdg/config",
			xdgData:    "/xdg/data",
			wantConfig: "/xdg/config/todolists",
			wantData:   "/xdg/data/todolists",
		},
		{
			name:       "config and data fall back independently",
			xdgData:    "/xdg/data",
			wantConfig: "/home/u/.config/todolists",
			wantData:   "/xdg/data/todolists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPlatform(t, "/home/u", "/unused", nil)
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)
			t.Setenv("XDG_DATA_HOME", tt.xdgData)

			cfg, err := DefaultConfigDir()
			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, cfg)

			data, err := DefaultDataDir()
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestDefaultDirs_OtherPlatforms(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("non-linux test")
	}
	root := filepath.Join("Users", "u", "Library", "Application Support")
	stubPlatform(t, "/unused", root, nil)
	t.Setenv("XDG_CONFIG_HOME", "/ignored")
	t.Setenv("XDG_DATA_HOME", "/ignored")

	cfg, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, AppName), cfg)

	data, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, cfg, data, "data shares the config directory outside linux")
}

func TestDefaultDirs_LookupError(t *testing.T) {
	errNoHome := errors.New("no home directory")
	stubPlatform(t, "", "", errNoHome)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")

	_, err := DefaultConfigDir()
	assert.ErrorIs(t, err, errNoHome)
	_, err = DefaultDataDir()
	assert.ErrorIs(t, err, errNoHome)

	t.Setenv(EnvConfigDir, "")
	_, err = ResolveConfigDir("")
	assert.ErrorIs(t, err, errNoHome)
}

func TestResolveConfigDir(t *testing.T) {
	stubPlatform(t, "/home/u", "/appdata", nil)
	t.Setenv("XDG_CONFIG_HOME", "")
	platformDefault := "/home/u/.config/todolists"
	if runtime.GOOS != "linux" {
		platformDefault = filepath.Join("/appdata", AppName)
	}
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
		{"platform default when both empty", "", "", platformDefault},
		{"relative flag is made absolute", "rel/cfg", "/env/config", filepath.Join(cwd, "rel", "cfg")},
		{"relative env is made absolute", "", "rel/env", filepath.Join(cwd, "rel", "env")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.want), filepath.Clean(got))
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
		{"working directory default when all empty", "", "", "", filepath.Join(cwd, DefaultDataDirName)},
		{"relative config value is made absolute", "", "rel/data", "/env/data", filepath.Join(cwd, "rel", "data")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.want), filepath.Clean(got))
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	dir := t.TempDir()

	resolved, err := ResolveConfigDir(dir)
	require.NoError(t, err)
	path := ConfigFile(resolved)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
	assert.Equal(t, ConfigFileName, filepath.Base(path))

	require.NoError(t, os.WriteFile(path, []byte("backend: session\n"), 0o644))
	data, err := os.ReadFile(ConfigFile(dir))
	require.NoError(t, err)
	assert.Equal(t, "backend: session\n", string(data))
}

func TestSessionFile(t *testing.T) {
	tests := []struct {
		dataDir string
		want    string
	}{
		{"/data", filepath.Join("/data", "session.jsonl")},
		{"rel", filepath.Join("rel", "session.jsonl")},
		{filepath.Join("/data", DefaultDataDirName), filepath.Join("/data", ".todolists-db", "session.jsonl")},
	}
	for _, tt := range tests {
		t.Run(tt.dataDir, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionFile(tt.dataDir))
		})
	}

	t.Setenv(EnvDataDir, "")
	dir, err := ResolveDataDir("", "")
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".todolists-db", "session.jsonl"), SessionFile(dir))
}
