//go:build dev

// Package trace provides runtime tracing for development builds.
//
// Usage:
//
//	CLINPUT_TRACE=trace.out clinput complete -- app build --o
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the file the trace is written to
const EnvVar = "CLINPUT_TRACE"

var (
	traceMu     sync.Mutex
	traceFile   *os.File
	traceActive bool
)

// Init starts tracing when CLINPUT_TRACE names a file. The returned
// function stops it.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clinput: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "clinput: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	traceFile = f
	traceActive = true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()

		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			_ = traceFile.Close()
			traceFile = nil
		}
	}
}

// Region opens a trace region and returns the function that closes it
func Region(ctx context.Context, regionType string) func() {
	if !IsEnabled() {
		return func() {}
	}
	return trace.StartRegion(ctx, regionType).End
}

// Log attaches a message to the trace
func Log(ctx context.Context, category, message string) {
	if IsEnabled() {
		trace.Log(ctx, category, message)
	}
}

// WithRegion runs f inside a trace region
func WithRegion(ctx context.Context, regionType string, f func()) {
	if IsEnabled() {
		trace.WithRegion(ctx, regionType, f)
		return
	}
	f()
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceActive
}
