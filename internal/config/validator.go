package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/completion"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// ValidationResult contains the results of manifest validation
type ValidationResult struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []ValidationError `json:"errors" yaml:"errors"`
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// builtinCompleters are the completion hints known without registration
var builtinCompleters = []string{"files", "dirs", "executables", CommandsCompleter}

// Validate validates a manifest file: schema first, then the checks the
// schema cannot express (definitions build, names are unique, completion
// hints are known).
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest not found: %s", path)
		}
		return nil, err
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	m, err := Parse(path, content)
	if err != nil {
		result.add("syntax", fmt.Sprintf("Failed to parse manifest: %v", err))
		return result, nil
	}

	validateManifest(m, result)
	return result, nil
}

func validateManifest(m *Manifest, result *ValidationResult) {
	if m.HasCommands() && len(m.Arguments) > 0 {
		result.add("arguments", "Top-level arguments cannot be combined with commands; declare them on each command")
	}

	if _, err := m.Application(); err != nil {
		result.add("options", definitionMessage(err))
	}

	seen := make(map[string]string)
	for i, c := range m.Commands {
		field := fmt.Sprintf("commands.%d", i)
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			if owner, ok := seen[name]; ok {
				result.add(field, fmt.Sprintf("Name conflict: %q is already used by command %q", name, owner))
				continue
			}
			seen[name] = c.Name
		}

		if _, err := m.Definition(c.Name); err != nil {
			result.add(field, definitionMessage(err))
		}

		for j, a := range c.Arguments {
			checkCompleter(result, fmt.Sprintf("%s.arguments.%d", field, j), a.Complete, a.Suggestions)
		}
		for j, o := range c.Options {
			checkCompleter(result, fmt.Sprintf("%s.options.%d", field, j), o.Complete, o.Suggestions)
		}
	}

	for j, a := range m.Arguments {
		checkCompleter(result, fmt.Sprintf("arguments.%d", j), a.Complete, a.Suggestions)
	}
	for j, o := range m.Options {
		checkCompleter(result, fmt.Sprintf("options.%d", j), o.Complete, o.Suggestions)
	}
}

func checkCompleter(result *ValidationResult, field, hint string, suggestions []string) {
	if hint == "" {
		return
	}
	if len(suggestions) > 0 {
		result.add(field, "Declare either suggestions or complete, not both")
	}
	if command, ok := strings.CutPrefix(hint, completion.ExecPrefix); ok {
		if strings.TrimSpace(command) == "" {
			result.add(field, "Completion command is empty")
		}
		return
	}
	for _, known := range builtinCompleters {
		if hint == known {
			return
		}
	}
	result.add(field, fmt.Sprintf("Unknown completer %q (expected %s or exec:<command>)", hint, strings.Join(builtinCompleters, ", ")))
}

func definitionMessage(err error) string {
	var de *derrors.DefinitionError
	if errors.As(err, &de) && de.Name != "" {
		return fmt.Sprintf("%s (%s)", err.Error(), de.Name)
	}
	return err.Error()
}
