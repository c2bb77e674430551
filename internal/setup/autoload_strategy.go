package setup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// AutoloadStrategy writes the script into a directory the shell loads
// completions from by command name. No startup file is edited.
type AutoloadStrategy struct {
	path    string
	message string
}

// NewAutoloadStrategy creates a strategy writing the script to path
func NewAutoloadStrategy(path string) *AutoloadStrategy {
	return &AutoloadStrategy{path: path}
}

// Install writes the script
func (s *AutoloadStrategy) Install(script []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}
	if err := atomicWrite(s.path, script); err != nil {
		return fmt.Errorf("failed to write completion script: %w", err)
	}

	s.message = fmt.Sprintf("✓ Completion script written to %s\n✓ Loaded automatically by new shells", s.path)
	return nil
}

// Uninstall removes the script
func (s *AutoloadStrategy) Uninstall() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove completion script: %w", err)
	}
	s.message = fmt.Sprintf("✓ Removed completion script: %s", s.path)
	return nil
}

// IsInstalled checks if the script exists
func (s *AutoloadStrategy) IsInstalled() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// NeedsUpdate checks if the installed script differs from script
func (s *AutoloadStrategy) NeedsUpdate(script []byte) bool {
	current, err := os.ReadFile(s.path)
	if err != nil {
		return true
	}
	return !bytes.Equal(current, script)
}

// ScriptPath returns the script path
func (s *AutoloadStrategy) ScriptPath() string { return s.path }

// RCFile returns "": autoloading needs no startup file
func (s *AutoloadStrategy) RCFile() string { return "" }

// Message returns a user-friendly message
func (s *AutoloadStrategy) Message() string {
	if s.message == "" {
		return "✓ Completion script is up to date"
	}
	return s.message
}
