package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/clinput/internal/config"
)

// Schema prints the manifest JSON Schema, or writes it to outputPath
func Schema(outputPath string, output io.Writer) error {
	out := outputOf(output)

	schema, err := config.Schema()
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(schema, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, _ = fmt.Fprintf(out, "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	_, err = fmt.Fprintln(out, string(schema))
	return err
}
