package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/clinput/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conflictingManifest = `
name: deploy
commands:
  - name: build
    aliases: [b]
  - name: bench
    aliases: [b]
`

func TestValidate_Valid(t *testing.T) {
	path := writeManifest(t, deployManifest)
	var out bytes.Buffer

	require.NoError(t, Validate(ValidateParams{ManifestPath: path, Output: &out}))
	assert.Contains(t, out.String(), "Validating: "+path)
	assert.Contains(t, out.String(), "✅ Manifest is valid!")
}

func TestValidate_Invalid(t *testing.T) {
	path := writeManifest(t, conflictingManifest)
	var out bytes.Buffer

	err := Validate(ValidateParams{ManifestPath: path, Output: &out})
	assert.EqualError(t, err, "validation failed")
	assert.Contains(t, out.String(), "❌ Manifest has errors:")
	assert.Contains(t, out.String(), "1. [commands.1]")
	assert.Contains(t, out.String(), "Found 1 error(s)")
}

func TestValidate_JSON(t *testing.T) {
	path := writeManifest(t, conflictingManifest)
	var out bytes.Buffer

	err := Validate(ValidateParams{ManifestPath: path, Format: FormatJSON, Output: &out})
	require.Error(t, err)

	var result config.ValidationResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "commands.1", result.Errors[0].Field)
}

func TestValidate_FindsManifest(t *testing.T) {
	path := writeManifest(t, deployManifest)
	t.Chdir(filepath.Dir(path))
	t.Setenv(config.ManifestEnvVar, "")

	var out bytes.Buffer
	require.NoError(t, Validate(ValidateParams{Output: &out}))
	assert.Contains(t, out.String(), ".clinput.yml")
}

func TestValidate_NoManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.ManifestEnvVar, "")

	err := Validate(ValidateParams{Output: &bytes.Buffer{}})
	assert.Error(t, err)
}
