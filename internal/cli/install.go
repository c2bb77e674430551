package cli

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/setup"
	"github.com/NikitaCOEUR/clinput/internal/shell"
)

// InstallParams contains parameters for the Install command
type InstallParams struct {
	ManifestPath string
	LogLevel     string
	Shell        string
	// Programs defaults to the manifest name
	Programs  []string
	Binary    string
	Uninstall bool
	Output    io.Writer
}

// Install writes the registration script of each program where the shell
// loads it, or removes it with Uninstall
func Install(params InstallParams) error {
	log := logger.New(params.LogLevel, nil).With("install")
	out := outputOf(params.Output)

	shellName, err := shell.Detect(params.Shell)
	if err != nil {
		return err
	}

	manifest := params.ManifestPath
	if manifest != "" {
		if manifest, err = filepath.Abs(manifest); err != nil {
			return fmt.Errorf("failed to resolve manifest path: %w", err)
		}
	}

	programs := params.Programs
	if len(programs) == 0 {
		m, path, err := loadManifest(manifest, log)
		if err != nil {
			return err
		}
		programs = []string{m.Name}
		if manifest == "" {
			manifest = path
		}
	}

	generator, err := shell.NewScriptGenerator(shellName)
	if err != nil {
		return err
	}

	for _, program := range programs {
		var result *setup.Result
		if params.Uninstall {
			result, err = setup.Uninstall(shellName, program)
		} else {
			var script bytes.Buffer
			if err := generator.Generate(&script, shell.ScriptParams{
				Programs: []string{program},
				Binary:   params.Binary,
				Manifest: manifest,
			}); err != nil {
				return err
			}
			result, err = setup.Install(shellName, program, script.Bytes())
		}
		if err != nil {
			return err
		}

		log.Debug().
			Str("program", program).
			Str("path", result.Path).
			Bool("updated", result.Updated).
			Msg("Processed completion script")
		_, _ = fmt.Fprintln(out, result.Message)
	}

	if !params.Uninstall && shellName == setup.ShellZsh {
		_, _ = fmt.Fprintln(out, "\nTo activate in current shell, run:")
		if rcFile, err := setup.GetRCFilePath(shellName); err == nil {
			_, _ = fmt.Fprintf(out, "  source %s\n", rcFile)
		}
	}
	return nil
}
