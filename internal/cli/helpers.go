package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
)

// LoadConfig loads settings, letting a non-empty log level from the command line win
func LoadConfig(logLevel string) (*config.Config, error) {
	cfg, err := config.New().Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// resolveTreePath returns path when given, otherwise the tree configured or installed
func resolveTreePath(cfg *config.Config, path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return tree.Resolve(cfg.TreePath, cfg.InstallRoot)
}

// stdout returns w, or os.Stdout when w is nil
func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// printf writes to w, ignoring errors like fmt.Printf
func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
