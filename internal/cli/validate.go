package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Config *config.Config
	Path   string // Tree file; the configured or installed tree when empty
	Out    io.Writer
}

// Validate checks a static tree file against the tree schema
func Validate(params ValidateParams) error {
	out := stdout(params.Out)

	path, err := resolveTreePath(params.Config, params.Path)
	if err != nil {
		return err
	}

	printf(out, "Validating: %s\n\n", path)

	result, err := tree.Validate(path)
	if err != nil {
		return err
	}

	if result.Valid {
		root, err := tree.Load(path)
		if err != nil {
			return err
		}
		stats := tree.Collect(root)
		printf(out, "✅ Tree is valid! (%d commands, %d flags)\n", stats.Commands, stats.Flags)
		return nil
	}

	printf(out, "❌ Tree has errors:\n")
	for i, validationErr := range result.Errors {
		printf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	printf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
