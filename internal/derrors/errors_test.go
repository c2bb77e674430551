package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownOptionError(t *testing.T) {
	err := NewUnknownOptionError("bogus", false, "--bonus", []string{"--bonus", "--verbose"})

	assert.Equal(t, "UNKNOWN_OPTION", err.Code())
	assert.Equal(t, "bogus", err.Name)
	assert.Equal(t, "--bonus", err.Suggestion)
	assert.Contains(t, err.Error(), `"--bogus"`)
	assert.Contains(t, err.Error(), `did you mean "--bonus"?`)
	assert.Contains(t, err.Error(), "--verbose")
	assert.Nil(t, errors.Unwrap(err))
}

func TestUnknownOptionError_Short(t *testing.T) {
	err := NewUnknownOptionError("z", true, "", nil)

	assert.Contains(t, err.Error(), `"-z"`)
	assert.NotContains(t, err.Error(), "did you mean")
	assert.NotContains(t, err.Error(), "valid options")
}

func TestMissingValueError(t *testing.T) {
	err := NewMissingValueError("out")

	assert.Equal(t, "MISSING_VALUE", err.Code())
	assert.Equal(t, "out", err.Option)
	assert.Contains(t, err.Error(), `"--out" option requires a value`)
}

func TestUnexpectedValueError(t *testing.T) {
	err := NewUnexpectedValueError("verbose")

	assert.Equal(t, "UNEXPECTED_VALUE", err.Code())
	assert.Contains(t, err.Error(), "does not accept a value")
}

func TestInvalidValueError(t *testing.T) {
	err := NewInvalidValueError("out", `the "--out" option expects a string`)

	assert.Equal(t, "INVALID_VALUE", err.Code())
	assert.Equal(t, "out", err.Name)
	assert.True(t, IsParseError(err))
}

func TestUnknownArgumentError(t *testing.T) {
	err := NewUnknownArgumentError("nope")

	assert.Equal(t, "UNKNOWN_ARGUMENT", err.Code())
	assert.Equal(t, `the "nope" argument does not exist`, err.Error())
	assert.True(t, IsParseError(err))
}

func TestTooManyArgumentsError(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected []string
		contains string
	}{
		{
			name:     "no arguments with command",
			command:  "build",
			contains: `no arguments expected for "build" command, got "extra"`,
		},
		{
			name:     "no arguments without command",
			contains: `no arguments expected, got "extra"`,
		},
		{
			name:     "expected arguments with command",
			command:  "build",
			expected: []string{"target"},
			contains: `too many arguments to "build" command, expected arguments "target"`,
		},
		{
			name:     "expected arguments without command",
			expected: []string{"a", "b"},
			contains: `too many arguments, expected arguments "a b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTooManyArgumentsError(tt.command, "extra", tt.expected)
			assert.Equal(t, "TOO_MANY_ARGUMENTS", err.Code())
			assert.Equal(t, "extra", err.Token)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestMalformedClusterError(t *testing.T) {
	err := NewMalformedClusterError("xzv", "z", []string{"v", "x"})

	assert.Equal(t, "MALFORMED_CLUSTER", err.Code())
	assert.Equal(t, "z", err.Shortcut)
	assert.Contains(t, err.Error(), `"-z"`)
	assert.Contains(t, err.Error(), `"-xzv"`)
	assert.Contains(t, err.Error(), "-v, -x")
}

func TestMissingArgumentsError(t *testing.T) {
	err := NewMissingArgumentsError([]string{"target", "env"})

	assert.Equal(t, "MISSING_ARGUMENTS", err.Code())
	assert.Contains(t, err.Error(), `"target, env"`)
}

func TestDefinitionError(t *testing.T) {
	err := NewDefinitionError("out", "an option named \"out\" already exists")

	assert.Equal(t, "DEFINITION_ERROR", err.Code())
	assert.Equal(t, "out", err.Name)
}

func TestConfigurationError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigurationError("/path/to/.clinput.yml", "failed to parse manifest", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/.clinput.yml", err.Path)
	assert.Contains(t, err.Error(), "failed to parse manifest")
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("command", "command \"deploy\" is not defined")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "command", err.Resource)
	assert.Nil(t, errors.Unwrap(err))
}

func TestCompletionError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewCompletionError("build", "completer failed", cause)

	assert.Equal(t, "COMPLETION_ERROR", err.Code())
	assert.Equal(t, "build", err.Command)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsParseError(t *testing.T) {
	assert.True(t, IsParseError(NewMissingValueError("out")))
	assert.True(t, IsParseError(fmt.Errorf("wrapped: %w", NewUnknownOptionError("x", true, "", nil))))
	assert.True(t, IsParseError(NewMissingArgumentsError([]string{"a"})))
	assert.False(t, IsParseError(NewCompletionError("build", "boom", nil)))
	assert.False(t, IsParseError(fmt.Errorf("plain")))
	assert.False(t, IsParseError(nil))
}

func TestErrorInterface(t *testing.T) {
	var errs []ClinputError
	errs = append(errs,
		NewUnknownOptionError("a", false, "", nil),
		NewMissingValueError("a"),
		NewUnexpectedValueError("a"),
		NewTooManyArgumentsError("", "a", nil),
		NewMalformedClusterError("ab", "b", nil),
		NewMissingArgumentsError([]string{"a"}),
		NewDefinitionError("a", "bad"),
		NewConfigurationError("p", "bad", nil),
		NewNotFoundError("r", "missing"),
		NewCompletionError("c", "bad", nil),
	)

	for _, err := range errs {
		assert.NotEmpty(t, err.Code())
		assert.NotEmpty(t, err.Error())
	}
}
