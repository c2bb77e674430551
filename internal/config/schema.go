package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaID is the $id of the generated manifest schema
const SchemaID = "https://raw.githubusercontent.com/NikitaCOEUR/clinput/main/schema/clinput.schema.json"

const namePattern = `^[A-Za-z0-9][A-Za-z0-9_.:-]*$`

var (
	schemaOnce sync.Once
	schemaJSON []byte
	schemaErr  error
)

// Schema returns the manifest JSON Schema generated from the Go types
func Schema() ([]byte, error) {
	schemaOnce.Do(func() {
		schemaJSON, schemaErr = json.MarshalIndent(reflectSchema(), "", "  ")
	})
	return schemaJSON, schemaErr
}

func reflectSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "koanf",
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&Manifest{})

	for _, defName := range []string{"CommandConfig", "ArgumentConfig", "OptionConfig"} {
		def, ok := schema.Definitions[defName]
		if !ok {
			continue
		}
		if name, ok := def.Properties.Get("name"); ok {
			name.Pattern = namePattern
		}
	}
	if cmd, ok := schema.Definitions["CommandConfig"]; ok {
		if aliases, ok := cmd.Properties.Get("aliases"); ok && aliases.Items != nil {
			aliases.Items.Pattern = namePattern
		}
	}

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = SchemaID
	schema.Title = "clinput manifest"
	schema.Description = "Options, arguments and commands of a command line program"
	return schema
}

// decodeDocument converts manifest content to a JSON-compatible structure
func decodeDocument(path string, content []byte) (any, error) {
	var data any

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("invalid YAML syntax: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("invalid JSON syntax: %w", err)
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			return nil, fmt.Errorf("invalid TOML syntax: %w", err)
		}
		data = m
	default:
		return nil, fmt.Errorf("unsupported manifest format: %q", ext)
	}

	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// ValidateWithSchema validates manifest content against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	data, err := decodeDocument(path, content)
	if err != nil {
		if strings.HasPrefix(err.Error(), "unsupported") {
			return nil, err
		}
		result.add("syntax", err.Error())
		return result, nil
	}

	schema, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	validation, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, e := range validation.Errors() {
		result.add(e.Field(), e.Description())
	}
	return result, nil
}
