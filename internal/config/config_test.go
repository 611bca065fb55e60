package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty directory and clears settings from the environment
func isolate(t *testing.T) *Loader {
	t.Helper()
	for _, name := range []string{
		"FASTCOMPLETE_LOG_LEVEL",
		"FASTCOMPLETE_LOG_FILE",
		"FASTCOMPLETE_INSTALL_ROOT",
		"FASTCOMPLETE_TREE_PATH",
		"FASTCOMPLETE_FALLBACK__COMMAND",
		"FASTCOMPLETE_FALLBACK__TIMEOUT",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return &Loader{Dir: t.TempDir()}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := isolate(t).Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.InstallRoot)
	assert.Empty(t, cfg.TreePath)
	assert.Empty(t, cfg.Fallback.Command)
	assert.Equal(t, 3*time.Second, cfg.Fallback.Timeout)
	assert.Empty(t, cfg.Source)
}

func TestLoad_UserFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yml",
			content: `log_level: debug
tree_path: /opt/tree.json
fallback:
  command: gcloud-full --complete
  timeout: 500ms
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `log_level = "debug"
tree_path = "/opt/tree.json"

[fallback]
command = "gcloud-full --complete"
timeout = "500ms"
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"log_level": "debug", "tree_path": "/opt/tree.json", "fallback": {"command": "gcloud-full --complete", "timeout": "500ms"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := isolate(t)
			path := filepath.Join(loader.Dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := loader.Load()
			require.NoError(t, err)

			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "/opt/tree.json", cfg.TreePath)
			assert.Equal(t, "gcloud-full --complete", cfg.Fallback.Command)
			assert.Equal(t, 500*time.Millisecond, cfg.Fallback.Timeout)
			assert.Equal(t, path, cfg.Source)
		})
	}
}

func TestLoad_FileKeepsUnsetDefaults(t *testing.T) {
	loader := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(loader.Dir, "config.yml"), []byte("log_level: info\n"), 0644))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Fallback.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	loader := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(loader.Dir, "config.yml"), []byte("log_level: info\ninstall_root: /from/file\n"), 0644))

	t.Setenv("FASTCOMPLETE_LOG_LEVEL", "error")
	t.Setenv("FASTCOMPLETE_FALLBACK__COMMAND", "full-cli")
	t.Setenv("FASTCOMPLETE_FALLBACK__TIMEOUT", "2s")

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/from/file", cfg.InstallRoot)
	assert.Equal(t, "full-cli", cfg.Fallback.Command)
	assert.Equal(t, 2*time.Second, cfg.Fallback.Timeout)
}

func TestLoad_ProtocolVariablesIgnored(t *testing.T) {
	loader := isolate(t)
	t.Setenv("FASTCOMPLETE_NO_FALLBACK", "1")
	t.Setenv("FASTCOMPLETE_TRACE", "/tmp/trace.out")

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidFile(t *testing.T) {
	loader := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(loader.Dir, "config.json"), []byte("{not json"), 0644))

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	loader := isolate(t)
	t.Setenv("FASTCOMPLETE_FALLBACK__TIMEOUT", "soon")

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindConfigFile(dir))
	assert.Empty(t, FindConfigFile(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(""), 0644))

	// yaml comes before json in preference order
	assert.Equal(t, filepath.Join(dir, "config.yaml"), FindConfigFile(dir))

	// A directory with a config name is not a config file
	other := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(other, "config.yml"), 0755))
	assert.Empty(t, FindConfigFile(other))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "fastcomplete"), DefaultDir())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "fastcomplete"), DefaultDir())
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"FASTCOMPLETE_LOG_LEVEL", "log_level"},
		{"FASTCOMPLETE_FALLBACK__COMMAND", "fallback.command"},
		{"FASTCOMPLETE_TREE_PATH", "tree_path"},
		{"FASTCOMPLETE_NO_FALLBACK", ""},
		{"FASTCOMPLETE_TRACE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, envKey(tt.name))
		})
	}
}

func TestParserFor(t *testing.T) {
	for _, name := range SupportedConfigNames {
		p, err := parserFor(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	_, err := parserFor("config.ini")
	assert.Error(t, err)
}
