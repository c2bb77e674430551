//go:build !dev

// Package trace provides runtime tracing for development builds. Release
// builds compile these no-op stubs.
package trace

import "context"

// EnvVar names the file the trace is written to in dev builds
const EnvVar = "CLINPUT_TRACE"

// Init is a no-op in release builds
func Init() func() {
	return func() {}
}

// Region is a no-op in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds
func Log(_ context.Context, _, _ string) {
}

// WithRegion just calls f in release builds
func WithRegion(_ context.Context, _ string, f func()) {
	f()
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	return false
}
