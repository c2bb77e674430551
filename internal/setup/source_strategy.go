package setup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceStrategy writes the script next to the clinput configuration and
// sources it from a marked block of the shell's startup file
type SourceStrategy struct {
	program    string
	scriptPath string
	rcFile     string
	message    string
}

// NewSourceStrategy creates a new source strategy
func NewSourceStrategy(program, scriptPath, rcFile string) *SourceStrategy {
	return &SourceStrategy{
		program:    program,
		scriptPath: scriptPath,
		rcFile:     rcFile,
	}
}

func (s *SourceStrategy) markers() (string, string) {
	return fmt.Sprintf("# clinput completion for %s - START", s.program),
		fmt.Sprintf("# clinput completion for %s - END", s.program)
}

func (s *SourceStrategy) block() string {
	start, end := s.markers()
	return fmt.Sprintf("%s\n[ -f %s ] && source %s\n%s\n", start, s.scriptPath, s.scriptPath, end)
}

// Install writes the script and adds the source block if missing
func (s *SourceStrategy) Install(script []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.scriptPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicWrite(s.scriptPath, script); err != nil {
		return fmt.Errorf("failed to write completion script: %w", err)
	}

	data, err := os.ReadFile(s.rcFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read RC file: %w", err)
	}

	content := string(data)
	start, end := s.markers()
	if containsMarkers(content, start, end) {
		s.message = fmt.Sprintf("✓ Completion script updated at %s\n✓ RC file already configured", s.scriptPath)
		return nil
	}

	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if len(content) > 0 {
		content += "\n"
	}
	content += s.block()

	if err := atomicWrite(s.rcFile, []byte(content)); err != nil {
		return fmt.Errorf("failed to update RC file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Completion script written to %s\n✓ Sourced from %s", s.scriptPath, s.rcFile)
	return nil
}

// Uninstall removes the script and the source block
func (s *SourceStrategy) Uninstall() error {
	if err := os.Remove(s.scriptPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove completion script: %w", err)
	}

	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.message = fmt.Sprintf("✓ Removed completion script: %s", s.scriptPath)
			return nil
		}
		return fmt.Errorf("failed to read RC file: %w", err)
	}

	start, end := s.markers()
	if err := atomicWrite(s.rcFile, []byte(removeMarkedSection(string(data), start, end))); err != nil {
		return fmt.Errorf("failed to update RC file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Removed completion script: %s\n✓ Removed block from %s", s.scriptPath, s.rcFile)
	return nil
}

// IsInstalled checks if the script exists and the RC file sources it
func (s *SourceStrategy) IsInstalled() bool {
	if _, err := os.Stat(s.scriptPath); err != nil {
		return false
	}

	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		return false
	}

	start, end := s.markers()
	return containsMarkers(string(data), start, end)
}

// NeedsUpdate checks if the installed script differs from script
func (s *SourceStrategy) NeedsUpdate(script []byte) bool {
	current, err := os.ReadFile(s.scriptPath)
	if err != nil {
		return true
	}
	return !bytes.Equal(current, script)
}

// ScriptPath returns the script path
func (s *SourceStrategy) ScriptPath() string { return s.scriptPath }

// RCFile returns the RC file path
func (s *SourceStrategy) RCFile() string { return s.rcFile }

// Message returns a user-friendly message
func (s *SourceStrategy) Message() string {
	if s.message == "" {
		return "✓ Completion script is up to date"
	}
	return s.message
}
