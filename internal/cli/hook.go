package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/fastcomplete/internal/shell"
)

// HookParams contains parameters for the Hook command
type HookParams struct {
	Shell    string   // bash or zsh; detected from $SHELL when empty
	Binary   string   // fastcomplete path; the running executable when empty
	Programs []string // programs completed through fastcomplete
	Out      io.Writer
}

// Hook prints the code registering fastcomplete as the completer of the given programs
func Hook(params HookParams) error {
	out := stdout(params.Out)

	name := params.Shell
	if name == "" {
		name = shell.Detect(os.Getenv("SHELL"))
	}
	gen, err := shell.NewCodeGenerator(name)
	if err != nil {
		return err
	}

	binary := params.Binary
	if binary == "" {
		if binary, err = os.Executable(); err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}
	}

	code, err := gen.Generate(shell.Registration{Binary: binary, Programs: params.Programs})
	if err != nil {
		return err
	}
	printf(out, "%s", code)
	return nil
}
