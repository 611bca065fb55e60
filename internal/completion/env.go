package completion

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"

	"github.com/NikitaCOEUR/fastcomplete/internal/output"
)

// Protocol environment variables shared by the shell, this program and the full CLI
const (
	LineEnvVar     = "COMP_LINE"
	PointEnvVar    = "COMP_POINT"
	ArgcompleteVar = "_ARGCOMPLETE"
	// NoFallbackEnvVar is set for the fallback child so it never falls back in turn
	NoFallbackEnvVar = "FASTCOMPLETE_NO_FALLBACK"
)

// Fallback asks the full CLI for completions when the static tree cannot answer.
// The CLI is called with the same environment variable protocol the shell uses
// (COMP_LINE, COMP_POINT, _ARGCOMPLETE_IFS) and writes its candidates to
// descriptor 8. Tools that print to stdout instead are supported too.
type Fallback struct {
	raw     string
	command []string
	err     error
	timeout time.Duration
}

// NewFallback creates a fallback for the given command line. The program and its
// arguments are split with shell word rules, so quoting and $VAR expansion work.
// An empty command disables the fallback.
func NewFallback(command string, timeout time.Duration) *Fallback {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	f := &Fallback{raw: strings.TrimSpace(command), timeout: timeout}
	if f.raw != "" {
		f.command, f.err = shell.Fields(f.raw, nil)
	}
	return f
}

// Enabled reports whether a fallback command is configured
func (f *Fallback) Enabled() bool {
	return f != nil && f.raw != ""
}

// Complete runs the fallback command for line (already cut at the cursor)
func (f *Fallback) Complete(ctx context.Context, line string, separator string) ([]string, error) {
	if !f.Enabled() {
		return nil, fmt.Errorf("no fallback command configured")
	}
	if f.err != nil {
		return nil, fmt.Errorf("invalid fallback command %q: %w", f.raw, f.err)
	}
	if len(f.command) == 0 {
		return nil, fmt.Errorf("fallback command %q expands to nothing", f.raw)
	}

	out, err := os.CreateTemp("", "fastcomplete-fallback-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback output file: %w", err)
	}
	defer func() {
		_ = out.Close()
		_ = os.Remove(out.Name())
	}()

	env := append(os.Environ(),
		LineEnvVar+"="+line,
		fmt.Sprintf("%s=%d", PointEnvVar, len([]rune(line))),
		ArgcompleteVar+"=1",
		output.IFSEnvVar+"="+separator,
		NoFallbackEnvVar+"=1",
	)

	stdout, err := execWithTimeoutAndEnv(ctx, f.timeout, env, descriptorFiles(out), f.command[0], f.command[1:]...)
	if err != nil {
		return nil, fmt.Errorf("fallback command failed: %w", err)
	}

	fdOutput, err := readLimited(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback output: %w", err)
	}

	if len(fdOutput) > 0 {
		return splitCandidates(fdOutput, separator), nil
	}
	return splitCandidates(stdout, "\n"), nil
}

// descriptorFiles places out at output.FD in the child; descriptors 3 to FD-1 stay closed
func descriptorFiles(out *os.File) []*os.File {
	files := make([]*os.File, output.FD-2)
	files[len(files)-1] = out
	return files
}

func readLimited(f *os.File) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(f, MaxOutputSize))
}
