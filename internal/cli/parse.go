package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/input"
	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/timing"
	"github.com/NikitaCOEUR/clinput/internal/token"
	"github.com/NikitaCOEUR/clinput/internal/trace"
	"github.com/NikitaCOEUR/clinput/internal/view"
)

// ParseParams contains parameters for the Parse command
type ParseParams struct {
	ManifestPath string
	LogLevel     string
	// Format is text, json or yaml
	Format string
	// Line is split with shell quoting rules and replaces Args when set
	Line   string
	Args   []string
	Output io.Writer
}

// Parse binds a command line against the manifest and prints the result.
// "--help" or "-h" print the usage of the resolved command instead, unless
// the definition declares them.
func Parse(ctx context.Context, params ParseParams) error {
	defer trace.Region(ctx, "cli.Parse")()

	log := logger.New(params.LogLevel, nil).With("parse")
	timer := timing.NewTimer()
	out := outputOf(params.Output)

	format := normalizeFormat(params.Format)
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q (expected text, json or yaml)", params.Format)
	}

	tokens := params.Args
	if params.Line != "" {
		var err error
		if tokens, err = token.Split(params.Line); err != nil {
			return fmt.Errorf("failed to split command line: %w", err)
		}
	}

	m, _, err := loadManifest(params.ManifestPath, log)
	if err != nil {
		return err
	}
	timer.Mark("load")

	def, err := resolveDefinition(m, tokens, log)
	if err != nil {
		return err
	}

	if wantsHelp(def, tokens) {
		return usage(out, m, def, tokens)
	}

	var in *input.Input
	trace.WithRegion(ctx, "input.ParseArgv", func() {
		in, err = input.ParseArgv(def, tokens)
	})
	if err != nil {
		log.Debug().Err(err).Strs("tokens", tokens).Msg("Parse failed")
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	timer.Mark("parse")

	log.Debug().
		Str("command", def.Name()).
		Strs("options", in.SetOptionNames()).
		Int("arguments", in.BoundArguments()).
		Msg("Parsed command line")
	timer.Log(log, "Parse timings")

	data := view.CollectInput(in)
	if format == FormatText {
		_, err := io.WriteString(out, view.RenderInput(data))
		return err
	}
	return writeStructured(out, format, data)
}

// wantsHelp reports whether tokens ask for usage with an undeclared
// --help or -h
func wantsHelp(def *definition.Definition, tokens []string) bool {
	var flags []string
	if !def.HasOption("help") {
		flags = append(flags, "--help")
	}
	if !def.HasShortcut("h") {
		flags = append(flags, "-h")
	}
	return len(flags) > 0 && input.HasParameterOption(tokens, flags, true)
}
