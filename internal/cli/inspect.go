package cli

import (
	"io"

	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/report"
)

// InspectParams contains parameters for the Inspect command
type InspectParams struct {
	Config   *config.Config
	TreePath string   // Overrides the configured tree when set
	Path     []string // Command path of the subtree to inspect
	Template string   // text/template rendering instead of the default view
	Out      io.Writer
}

// Inspect displays statistics about the static tree or one of its subtrees
func Inspect(params InspectParams) error {
	out := stdout(params.Out)

	path, err := resolveTreePath(params.Config, params.TreePath)
	if err != nil {
		return err
	}

	data, err := report.Collect(path, params.Path)
	if err != nil {
		return err
	}

	if params.Template != "" {
		return report.RenderTemplate(out, params.Template, data)
	}

	printf(out, "%s\n", report.Render(data))
	return nil
}
