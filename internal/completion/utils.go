package completion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultCommandTimeout is the default timeout for fallback commands
	DefaultCommandTimeout = 3 * time.Second
	// MaxOutputSize is the maximum size of command output (1MB)
	MaxOutputSize = 1024 * 1024
)

// execWithTimeoutAndEnv runs a command with a timeout and a custom environment.
// extraFiles are passed to the child starting at descriptor 3; nil entries are closed.
// If env is nil, the command inherits the current process environment.
func execWithTimeoutAndEnv(ctx context.Context, timeout time.Duration, env []string, extraFiles []*os.File, tool string, args ...string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool, args...)
	if env != nil {
		cmd.Env = env
	}
	cmd.ExtraFiles = extraFiles

	var stdout bytes.Buffer
	cmd.Stdout = &limitedBuffer{buf: &stdout, max: MaxOutputSize}

	if err := cmd.Run(); err != nil {
		// Check if it was a timeout
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("command timeout after %v: %w", timeout, err)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// limitedBuffer keeps the first max bytes and silently drops the rest, so a
// chatty child never blocks on a full pipe.
type limitedBuffer struct {
	buf *bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max - l.buf.Len(); room > 0 {
		if len(p) > room {
			l.buf.Write(p[:room])
		} else {
			l.buf.Write(p)
		}
	}
	return len(p), nil
}

// splitCandidates splits raw output on sep, trimming whitespace and dropping empty entries
func splitCandidates(output []byte, sep string) []string {
	candidates := []string{}
	if len(output) == 0 {
		return candidates
	}

	for _, part := range strings.Split(string(output), sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		candidates = append(candidates, part)
	}

	return candidates
}
