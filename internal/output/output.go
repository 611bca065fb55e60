// Package output writes completion candidates for the shell's completion machinery.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// IFSEnvVar names the variable holding the candidate separator
	IFSEnvVar = "_ARGCOMPLETE_IFS"
	// DefaultIFS is used when IFSEnvVar is unset (vertical tab, \013)
	DefaultIFS = "\013"
	// FD is the pre-opened descriptor the shell reads completions from
	FD = 8
)

// Separator returns the separator configured in the environment
func Separator(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if sep := getenv(IFSEnvVar); sep != "" {
		return sep
	}
	return DefaultIFS
}

// Writer serializes candidates for the shell
type Writer struct {
	W         io.Writer
	Separator string
}

// New creates a writer with the given separator
func New(w io.Writer, separator string) *Writer {
	return &Writer{W: w, Separator: separator}
}

// Write joins the candidates with the separator and writes them as raw bytes.
// Nothing is written when there are no candidates.
func (w *Writer) Write(candidates []string) error {
	if len(candidates) == 0 {
		return nil
	}
	if _, err := io.WriteString(w.W, strings.Join(candidates, w.Separator)); err != nil {
		return fmt.Errorf("failed to write completions: %w", err)
	}
	return nil
}

// OpenFD returns the pre-opened completion descriptor. The caller closes it.
func OpenFD(fd uintptr) (*os.File, error) {
	f := os.NewFile(fd, "completions")
	if f == nil {
		return nil, fmt.Errorf("invalid completion descriptor %d", fd)
	}
	if _, err := f.Stat(); err != nil {
		return nil, fmt.Errorf("completion descriptor %d is not open: %w", fd, err)
	}
	return f, nil
}
