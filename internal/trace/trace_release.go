//go:build !dev

// Package trace records runtime/trace regions around completion phases in dev builds.
// Release builds compile these no-ops so the completion path pays nothing.
package trace

import "context"

// EnvVar names the variable holding the trace output path
const EnvVar = "FASTCOMPLETE_TRACE"

// Init is a no-op in release builds
func Init(string) func() { return func() {} }

// Region is a no-op in release builds
func Region(context.Context, string) func() { return func() {} }

// Log is a no-op in release builds
func Log(context.Context, string, string) {}

// WithRegion runs f
func WithRegion(_ context.Context, _ string, f func()) { f() }

// IsEnabled always reports false in release builds
func IsEnabled() bool { return false }
