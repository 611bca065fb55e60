// Package config handles loading of fastcomplete settings.
//
// Settings are layered, lowest priority first: embedded defaults, an optional
// user file under $XDG_CONFIG_HOME/fastcomplete and FASTCOMPLETE_* environment
// variables.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed defaults.yml
var defaultsYAML []byte

const (
	// EnvPrefix is the prefix of environment variables read as settings
	EnvPrefix = "FASTCOMPLETE_"
	// AppDir is the directory name under the user config directory
	AppDir = "fastcomplete"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// FallbackConfig configures the full CLI consulted when the static tree cannot answer
type FallbackConfig struct {
	Command string        `koanf:"command"`
	Timeout time.Duration `koanf:"timeout"`
}

// Config represents fastcomplete settings
type Config struct {
	LogLevel    string         `koanf:"log_level"`
	LogFile     string         `koanf:"log_file"`
	InstallRoot string         `koanf:"install_root"`
	TreePath    string         `koanf:"tree_path"`
	Fallback    FallbackConfig `koanf:"fallback"`

	// Source is the user file that was merged, empty when none was found
	Source string `koanf:"-"`
}

// Loader handles loading and merging configuration layers
type Loader struct {
	// Dir is the directory searched for a user file. Empty means the default location.
	Dir string
}

// New creates a new config loader using the default locations
func New() *Loader {
	return &Loader{}
}

// Load merges all layers into a Config
func (l *Loader) Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	source := FindConfigFile(l.dir())
	if source != "" {
		parser, err := parserFor(source)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(source), parser); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", source, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Source = source

	return cfg, nil
}

// Protocol variables share the prefix but are not settings
var ignoredEnv = map[string]bool{
	"FASTCOMPLETE_NO_FALLBACK": true,
	"FASTCOMPLETE_TRACE":       true,
}

// envKey maps FASTCOMPLETE_FALLBACK__COMMAND to fallback.command. An empty key skips the variable.
func envKey(name string) string {
	if ignoredEnv[name] {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
}

func (l *Loader) dir() string {
	if l.Dir != "" {
		return l.Dir
	}
	return DefaultDir()
}

// DefaultDir returns $XDG_CONFIG_HOME/fastcomplete, falling back to ~/.config/fastcomplete
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppDir)
}

// FindConfigFile returns the first supported config file in dir, or "" if none exists
func FindConfigFile(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}
