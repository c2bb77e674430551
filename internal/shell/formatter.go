// Package shell renders completion candidates and registration scripts for
// bash, zsh and fish.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/completion"
)

const (
	shellBash = "bash"
	shellZsh  = "zsh"
	shellFish = "fish"
)

// Supported lists the shells with a formatter and a script generator
var Supported = []string{shellBash, shellZsh, shellFish}

// Formatter writes completion candidates in a shell's expected format
type Formatter interface {
	// Name returns the shell name (bash, zsh, etc.)
	Name() string
	// Format writes one candidate per line
	Format(w io.Writer, suggestions []completion.Suggestion) error
}

// BashFormatter writes bare values: bash has no per-candidate descriptions
type BashFormatter struct{}

// Name returns the shell name for bash
func (BashFormatter) Name() string { return shellBash }

// Format writes values only
func (BashFormatter) Format(w io.Writer, suggestions []completion.Suggestion) error {
	return writeLines(w, suggestions, func(s completion.Suggestion) string {
		return s.Value
	})
}

// ZshFormatter writes "value:description" for _describe. Colons in the
// value are escaped.
type ZshFormatter struct{}

// Name returns the shell name for zsh
func (ZshFormatter) Name() string { return shellZsh }

// Format writes _describe entries
func (ZshFormatter) Format(w io.Writer, suggestions []completion.Suggestion) error {
	return writeLines(w, suggestions, func(s completion.Suggestion) string {
		value := strings.ReplaceAll(s.Value, ":", `\:`)
		if s.Description == "" {
			return value
		}
		return value + ":" + s.Description
	})
}

// FishFormatter writes "value<TAB>description"
type FishFormatter struct{}

// Name returns the shell name for fish
func (FishFormatter) Name() string { return shellFish }

// Format writes fish completion entries
func (FishFormatter) Format(w io.Writer, suggestions []completion.Suggestion) error {
	return writeLines(w, suggestions, func(s completion.Suggestion) string {
		if s.Description == "" {
			return s.Value
		}
		return s.Value + "\t" + s.Description
	})
}

func writeLines(w io.Writer, suggestions []completion.Suggestion, line func(completion.Suggestion) string) error {
	bw := bufio.NewWriter(w)
	for _, s := range suggestions {
		s.Value = singleLine(s.Value)
		s.Description = singleLine(s.Description)
		if _, err := fmt.Fprintln(bw, line(s)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// singleLine keeps a field on one output line
func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// NewFormatter returns the formatter for a shell
func NewFormatter(shell string) (Formatter, error) {
	switch shell {
	case shellBash:
		return BashFormatter{}, nil
	case shellZsh:
		return ZshFormatter{}, nil
	case shellFish:
		return FishFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Supported, ", "))
	}
}

// Detect resolves a --shell flag value. "" and "auto" use the basename of
// $SHELL.
func Detect(flag string) (string, error) {
	shell := strings.ToLower(strings.TrimSpace(flag))
	if shell == "" || shell == "auto" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}

	for _, s := range Supported {
		if s == shell {
			return shell, nil
		}
	}
	return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Supported, ", "))
}
