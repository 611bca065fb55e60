package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/fastcomplete/internal/derrors"
)

// DataDir is where the generated tree lives, relative to the installation root
const DataDir = "data/cli"

// SupportedTreeNames contains the tree file names looked up by Locate (in order of preference)
var SupportedTreeNames = []string{
	"completions.json",
	"completions.yaml",
	"completions.yml",
	"completions.toml",
}

// parserFor picks a koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported tree format: %s", ext)
	}
}

// ReadRaw reads and parses a tree file without decoding it into a Node
func ReadRaw(path string) (map[string]interface{}, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewTreeLoadError(path, "cannot parse tree", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewTreeLoadError(path, "failed to read tree", err)
	}

	raw, err := parser.Unmarshal(data)
	if err != nil {
		return nil, derrors.NewTreeLoadError(path, "failed to parse tree", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

// Load reads, parses and decodes the tree file at path
func Load(path string) (*Node, error) {
	raw, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}

	root, err := Decode(raw)
	if err != nil {
		return nil, derrors.NewTreeLoadError(path, "invalid tree", err)
	}
	return root, nil
}

// Locate finds the tree file below the installation root
func Locate(installRoot string) (string, error) {
	dir := filepath.Join(installRoot, DataDir)
	for _, name := range SupportedTreeNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", derrors.NewTreeLoadError(dir, "no static completion tree found", os.ErrNotExist)
}

// DefaultInstallRoot returns the parent of the directory holding the running executable,
// so that <root>/bin/fastcomplete finds <root>/data/cli/completions.json.
func DefaultInstallRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// Resolve returns the tree path to use: an explicit path wins, then the
// installation root (or the default one when empty).
func Resolve(treePath, installRoot string) (string, error) {
	if treePath != "" {
		if _, err := os.Stat(treePath); err != nil {
			return "", derrors.NewTreeLoadError(treePath, "configured tree not found", err)
		}
		return treePath, nil
	}

	if installRoot == "" {
		root, err := DefaultInstallRoot()
		if err != nil {
			return "", derrors.NewTreeLoadError("", "cannot determine installation root", err)
		}
		installRoot = root
	}
	return Locate(installRoot)
}

// IsNotFound reports whether err is a tree load error caused by a missing file
func IsNotFound(err error) bool {
	var loadErr *derrors.TreeLoadError
	return errors.As(err, &loadErr) && errors.Is(err, os.ErrNotExist)
}
