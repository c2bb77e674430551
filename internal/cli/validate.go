package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/clinput/internal/config"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	ManifestPath string
	// Format is text, json or yaml
	Format string
	Output io.Writer
}

// Validate checks a manifest against the schema and the rules a definition
// enforces. An invalid manifest returns an error after the report is printed.
func Validate(params ValidateParams) error {
	out := outputOf(params.Output)

	path := params.ManifestPath
	if path == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		if path, err = config.FindManifest(currentDir); err != nil {
			return err
		}
	}

	result, err := config.Validate(path)
	if err != nil {
		return err
	}

	switch format := normalizeFormat(params.Format); format {
	case FormatText:
		writeReport(out, path, result)
	case FormatJSON, FormatYAML:
		if err := writeStructured(out, format, result); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (expected text, json or yaml)", params.Format)
	}

	if !result.Valid {
		return errors.New("validation failed")
	}
	return nil
}

func writeReport(w io.Writer, path string, result *config.ValidationResult) {
	_, _ = fmt.Fprintf(w, "Validating: %s\n\n", path)
	if result.Valid {
		_, _ = fmt.Fprintln(w, "✅ Manifest is valid!")
		return
	}

	_, _ = fmt.Fprintln(w, "❌ Manifest has errors:")
	for i, e := range result.Errors {
		_, _ = fmt.Fprintf(w, "%d. [%s] %s\n", i+1, e.Field, e.Message)
	}
	_, _ = fmt.Fprintf(w, "\nFound %d error(s)\n", len(result.Errors))
}
