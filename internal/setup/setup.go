// Package setup installs completion registration scripts where each shell
// picks them up.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
)

// Shells with an install strategy
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

// Result represents the result of an install or uninstall
type Result struct {
	// Path is the installed script
	Path string
	// RCFile is the shell startup file that was edited, if any
	RCFile  string
	Updated bool
	Message string
}

// InstallStrategy defines how a registration script reaches a shell
type InstallStrategy interface {
	// Install writes script and wires it into the shell
	Install(script []byte) error
	// Uninstall removes the script and its wiring
	Uninstall() error
	// IsInstalled checks if the script is currently installed
	IsInstalled() bool
	// NeedsUpdate checks if the installed script differs from script
	NeedsUpdate(script []byte) bool
	// ScriptPath returns where the script is written
	ScriptPath() string
	// RCFile returns the startup file the strategy edits, or ""
	RCFile() string
	// Message returns a user-friendly message about the last change
	Message() string
}

// SelectInstallStrategy returns the strategy for program under shell.
// bash and fish load completion files on demand by command name; zsh
// sources the script from .zshrc.
func SelectInstallStrategy(shell, program string) (InstallStrategy, error) {
	switch shell {
	case ShellBash:
		dir, err := dataHome()
		if err != nil {
			return nil, err
		}
		return NewAutoloadStrategy(filepath.Join(dir, "bash-completion", "completions", program)), nil
	case ShellFish:
		dir, err := configHome()
		if err != nil {
			return nil, err
		}
		return NewAutoloadStrategy(filepath.Join(dir, "fish", "completions", program+".fish")), nil
	case ShellZsh:
		dir, err := configHome()
		if err != nil {
			return nil, err
		}
		rcFile, err := GetRCFilePath(shell)
		if err != nil {
			return nil, err
		}
		return NewSourceStrategy(program, filepath.Join(dir, "clinput", program+".zsh"), rcFile), nil
	default:
		return nil, fmt.Errorf("unsupported shell: %s (use bash, zsh or fish)", shell)
	}
}

// GetRCFilePath returns the RC file path for the given shell
func GetRCFilePath(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch shell {
	case ShellBash:
		return filepath.Join(home, ".bashrc"), nil
	case ShellZsh:
		return filepath.Join(home, ".zshrc"), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (use bash or zsh)", shell)
	}
}

// Install installs or updates the registration script of program
func Install(shell, program string, script []byte) (*Result, error) {
	strategy, err := SelectInstallStrategy(shell, program)
	if err != nil {
		return nil, err
	}

	if strategy.IsInstalled() && !strategy.NeedsUpdate(script) {
		return &Result{
			Path:    strategy.ScriptPath(),
			RCFile:  strategy.RCFile(),
			Updated: false,
			Message: fmt.Sprintf("✓ Completion for %s is up to date", program),
		}, nil
	}

	if err := strategy.Install(script); err != nil {
		return nil, fmt.Errorf("failed to install completion for %s: %w", program, err)
	}

	return &Result{
		Path:    strategy.ScriptPath(),
		RCFile:  strategy.RCFile(),
		Updated: true,
		Message: strategy.Message(),
	}, nil
}

// Uninstall removes the registration script of program
func Uninstall(shell, program string) (*Result, error) {
	strategy, err := SelectInstallStrategy(shell, program)
	if err != nil {
		return nil, err
	}

	if !strategy.IsInstalled() {
		return &Result{
			Path:    strategy.ScriptPath(),
			RCFile:  strategy.RCFile(),
			Updated: false,
			Message: fmt.Sprintf("✓ Completion for %s is not installed", program),
		}, nil
	}

	if err := strategy.Uninstall(); err != nil {
		return nil, fmt.Errorf("failed to uninstall completion for %s: %w", program, err)
	}

	return &Result{
		Path:    strategy.ScriptPath(),
		RCFile:  strategy.RCFile(),
		Updated: true,
		Message: strategy.Message(),
	}, nil
}

// IsInstalled checks if the registration script of program is installed
func IsInstalled(shell, program string) (bool, error) {
	strategy, err := SelectInstallStrategy(shell, program)
	if err != nil {
		return false, err
	}
	return strategy.IsInstalled(), nil
}

func dataHome() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}
