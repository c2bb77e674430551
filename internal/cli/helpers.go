// Package cli implements the clinput commands. Each command takes a params
// struct and writes to params.Output (stdout when nil).
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/auth"
	"github.com/NikitaCOEUR/clinput/internal/config"
	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/input"
	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/view"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by parse and describe
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHelp = "help"
)

// loader is shared so repeated calls in one process reuse parsed manifests
var loader = config.New()

func outputOf(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// loadManifest loads path, or the manifest found from the working directory
// when path is empty
func loadManifest(path string, log *logger.Logger) (*config.Manifest, string, error) {
	if path == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", err)
		}
		if path, err = config.FindManifest(currentDir); err != nil {
			return nil, "", err
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	m, err := loader.Load(path)
	if err != nil {
		return nil, path, err
	}

	log.Debug().
		Str("manifest", path).
		Str("name", m.Name).
		Int("commands", len(m.Commands)).
		Msg("Loaded manifest")
	return m, path, nil
}

// openAuth opens the grants file at path, or at the default location
func openAuth(path string) (*auth.Auth, error) {
	if path == "" {
		var err error
		if path, err = auth.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return auth.New(path)
}

// resolveDefinition returns the definition tokens bind against: the
// command's when the first positional token names one, the application's
// otherwise
func resolveDefinition(m *config.Manifest, tokens []string, log *logger.Logger) (*definition.Definition, error) {
	app, err := m.Application()
	if err != nil {
		return nil, err
	}
	if !m.HasCommands() {
		return app, nil
	}

	name, ok := input.FirstArgument(app, tokens)
	if !ok {
		log.Debug().Strs("tokens", tokens).Msg("No command in tokens")
		return app, nil
	}

	log.Debug().Str("command", name).Msg("Resolved command")
	return m.Definition(name)
}

// commandSummaries lists the manifest commands for display
func commandSummaries(m *config.Manifest) []view.Summary {
	summaries := make([]view.Summary, 0, len(m.Commands))
	for _, c := range m.Commands {
		summaries = append(summaries, view.Summary{
			Name:        c.Name,
			Aliases:     c.Aliases,
			Description: c.Description,
		})
	}
	return summaries
}

// writeStructured marshals v as JSON or YAML
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ArgsAfterTerminator returns what follows the first "--" in args, or
// fallback when there is none. urfave/cli drops "--" from a command's
// arguments, so commands that forward a command line read it from os.Args.
func ArgsAfterTerminator(args []string, fallback []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return append([]string{}, args[i+1:]...)
		}
	}
	return fallback
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatText
	}
	return format
}
