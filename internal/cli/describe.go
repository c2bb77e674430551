package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/clinput/internal/config"
	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/input"
	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/view"
)

// DescribeParams contains parameters for the Describe command
type DescribeParams struct {
	ManifestPath string
	LogLevel     string
	// Command selects a command; empty describes the application
	Command string
	// Format is text, help, json or yaml
	Format string
	Output io.Writer
}

// Describe prints the options, arguments and commands of the application or
// of one command
func Describe(params DescribeParams) error {
	log := logger.New(params.LogLevel, nil).With("describe")
	out := outputOf(params.Output)

	m, _, err := loadManifest(params.ManifestPath, log)
	if err != nil {
		return err
	}

	var (
		def         *definition.Definition
		description = m.Description
		commands    []view.Summary
	)
	if params.Command == "" {
		if def, err = m.Application(); err != nil {
			return err
		}
		commands = commandSummaries(m)
	} else {
		if def, err = m.Definition(params.Command); err != nil {
			return err
		}
		c, _ := m.Command(params.Command)
		description = c.Description
	}

	data := view.CollectCommand(def, description, commands)
	switch format := normalizeFormat(params.Format); format {
	case FormatText:
		_, err := io.WriteString(out, view.RenderCommand(data))
		return err
	case FormatHelp:
		return view.Help(out, data)
	case FormatJSON, FormatYAML:
		return writeStructured(out, format, data)
	default:
		return fmt.Errorf("unsupported format %q (expected text, help, json or yaml)", params.Format)
	}
}

// usage writes the help text of def. Application definitions list the
// commands; command definitions use the command's description.
func usage(w io.Writer, m *config.Manifest, def *definition.Definition, tokens []string) error {
	description := m.Description
	var commands []view.Summary

	switch {
	case !m.HasCommands():
	case def.Name() == m.Name:
		commands = commandSummaries(m)
	default:
		name, _ := input.FirstArgument(def, tokens)
		if c, ok := m.Command(name); ok {
			description = c.Description
		}
	}

	return view.Help(w, view.CollectCommand(def, description, commands))
}
