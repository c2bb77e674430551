package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/clinput/internal/logger"
)

// AllowParams contains parameters for the Allow and Revoke commands
type AllowParams struct {
	ManifestPath string
	AuthPath     string
	LogLevel     string
	Output       io.Writer
}

// Allow lets the manifest's completion commands run. The grant covers the
// commands declared now; editing them requires allowing the manifest again.
func Allow(params AllowParams) error {
	log := logger.New(params.LogLevel, nil).With("allow")
	out := outputOf(params.Output)

	m, path, err := loadManifest(params.ManifestPath, log)
	if err != nil {
		return err
	}

	a, err := openAuth(params.AuthPath)
	if err != nil {
		return fmt.Errorf("failed to open grants: %w", err)
	}

	commands := m.ExecCommands()
	if err := a.Allow(path, commands); err != nil {
		return fmt.Errorf("failed to allow manifest: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Allowed: %s\n", path)
	if len(commands) == 0 {
		_, _ = fmt.Fprintln(out, "  (no completion commands declared)")
	}
	for _, c := range commands {
		_, _ = fmt.Fprintf(out, "  - %s\n", c)
	}
	return nil
}

// Revoke removes the grant of a manifest. The manifest file does not need
// to exist anymore.
func Revoke(params AllowParams) error {
	out := outputOf(params.Output)

	path := params.ManifestPath
	if path == "" {
		log := logger.New(params.LogLevel, nil).With("revoke")
		_, found, err := loadManifest("", log)
		if err != nil {
			return err
		}
		path = found
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	a, err := openAuth(params.AuthPath)
	if err != nil {
		return fmt.Errorf("failed to open grants: %w", err)
	}
	if a.Get(path) == nil {
		_, _ = fmt.Fprintf(out, "✓ Not allowed: %s\n", path)
		return nil
	}
	if err := a.Revoke(path); err != nil {
		return fmt.Errorf("failed to revoke manifest: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✓ Revoked: %s\n", path)
	return nil
}

// List prints the allowed manifests. Manifests that no longer exist are
// flagged.
func List(authPath string, output io.Writer) error {
	out := outputOf(output)

	a, err := openAuth(authPath)
	if err != nil {
		return fmt.Errorf("failed to open grants: %w", err)
	}

	paths := a.List()
	if len(paths) == 0 {
		_, _ = fmt.Fprintln(out, "No allowed manifests")
		return nil
	}

	for _, path := range paths {
		line := path
		if _, err := os.Stat(path); err != nil {
			line += " (missing)"
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}
