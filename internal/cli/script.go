package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/shell"
)

// ScriptParams contains parameters for the Script command
type ScriptParams struct {
	ManifestPath string
	LogLevel     string
	Shell        string
	// Programs defaults to the manifest name
	Programs []string
	// Binary is how the script calls clinput back
	Binary string
	Output io.Writer
}

// Script prints the registration script that routes a shell's completion
// requests for the programs to "clinput complete"
func Script(params ScriptParams) error {
	log := logger.New(params.LogLevel, nil).With("script")
	out := outputOf(params.Output)

	shellName, err := shell.Detect(params.Shell)
	if err != nil {
		return err
	}
	generator, err := shell.NewScriptGenerator(shellName)
	if err != nil {
		return err
	}

	programs := params.Programs
	manifest := params.ManifestPath
	if manifest != "" {
		if manifest, err = filepath.Abs(manifest); err != nil {
			return fmt.Errorf("failed to resolve manifest path: %w", err)
		}
	}

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

	log.Debug().
		Str("shell", shellName).
		Strs("programs", programs).
		Str("manifest", manifest).
		Msg("Generating registration script")

	return generator.Generate(out, shell.ScriptParams{
		Programs: programs,
		Binary:   params.Binary,
		Manifest: manifest,
	})
}
