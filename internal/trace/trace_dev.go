//go:build dev

// Package trace records runtime/trace regions around completion phases in dev builds.
//
// Usage:
//
//	go build -tags dev ./cmd/fastcomplete
//	COMP_LINE="gcloud comp" COMP_POINT=11 FASTCOMPLETE_TRACE=trace.out fastcomplete complete 8>/dev/null
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the variable holding the trace output path
const EnvVar = "FASTCOMPLETE_TRACE"

var (
	mu     sync.Mutex
	out    *os.File
	active bool
)

// Init starts tracing to path. An empty path disables tracing.
// The returned function stops tracing and must be deferred.
func Init(path string) func() {
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastcomplete: trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "fastcomplete: start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	out, active = f, true

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if active {
			trace.Stop()
			active = false
		}
		if out != nil {
			_ = out.Close()
			out = nil
		}
	}
}

// Region opens a region and returns the function closing it
func Region(ctx context.Context, name string) func() {
	if !active {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log attaches a message to the trace
func Log(ctx context.Context, category, message string) {
	if active {
		trace.Log(ctx, category, message)
	}
}

// WithRegion runs f inside a region
func WithRegion(ctx context.Context, name string, f func()) {
	if active {
		trace.WithRegion(ctx, name, f)
		return
	}
	f()
}

// IsEnabled reports whether a trace is being recorded
func IsEnabled() bool {
	return active
}
