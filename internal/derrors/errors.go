// Package derrors provides the error taxonomy for clinput.
// Every error carries a stable code so callers can branch on the failure
// class without matching message text.
package derrors

import (
	"errors"
	"fmt"
	"strings"
)

// ClinputError is the base interface for all clinput errors
type ClinputError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all clinput errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// UnknownOptionError is raised when a long or short option is not declared
type UnknownOptionError struct {
	baseError
	// Name is the option as typed, without leading dashes
	Name string
	// Suggestion is the closest declared option, prefixed with dashes, or ""
	Suggestion string
	// Valid lists every declared option as --name
	Valid []string
}

// NewUnknownOptionError creates a new unknown option error.
// short selects the "-x" rendering of the name.
func NewUnknownOptionError(name string, short bool, suggestion string, valid []string) *UnknownOptionError {
	flag := "--" + name
	if short {
		flag = "-" + name
	}

	msg := fmt.Sprintf("the %q option does not exist", flag)
	if suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", suggestion)
	}
	if len(valid) > 0 {
		msg += fmt.Sprintf(" (valid options: %s)", strings.Join(valid, ", "))
	}

	return &UnknownOptionError{
		baseError: baseError{
			code:    "UNKNOWN_OPTION",
			message: msg,
		},
		Name:       name,
		Suggestion: suggestion,
		Valid:      valid,
	}
}

// MissingValueError is raised when a value-required option gets no value
type MissingValueError struct {
	baseError
	Option string
}

// NewMissingValueError creates a new missing value error
func NewMissingValueError(option string) *MissingValueError {
	return &MissingValueError{
		baseError: baseError{
			code:    "MISSING_VALUE",
			message: fmt.Sprintf("the \"--%s\" option requires a value", option),
		},
		Option: option,
	}
}

// UnexpectedValueError is raised when a value is given to an option that takes none
type UnexpectedValueError struct {
	baseError
	Option string
}

// NewUnexpectedValueError creates a new unexpected value error
func NewUnexpectedValueError(option string) *UnexpectedValueError {
	return &UnexpectedValueError{
		baseError: baseError{
			code:    "UNEXPECTED_VALUE",
			message: fmt.Sprintf("the \"--%s\" option does not accept a value", option),
		},
		Option: option,
	}
}

// InvalidValueError is raised when a programmatic value has the wrong shape
// for its argument or option
type InvalidValueError struct {
	baseError
	Name string
}

// NewInvalidValueError creates a new invalid value error
func NewInvalidValueError(name string, message string) *InvalidValueError {
	return &InvalidValueError{
		baseError: baseError{
			code:    "INVALID_VALUE",
			message: message,
		},
		Name: name,
	}
}

// UnknownArgumentError is raised when an argument is addressed by a name or
// index the definition does not declare
type UnknownArgumentError struct {
	baseError
	Name string
}

// NewUnknownArgumentError creates a new unknown argument error
func NewUnknownArgumentError(name string) *UnknownArgumentError {
	return &UnknownArgumentError{
		baseError: baseError{
			code:    "UNKNOWN_ARGUMENT",
			message: fmt.Sprintf("the %q argument does not exist", name),
		},
		Name: name,
	}
}

// TooManyArgumentsError is raised when positional tokens exceed the declared slots
type TooManyArgumentsError struct {
	baseError
	Command  string
	Token    string
	Expected []string
}

// NewTooManyArgumentsError creates a new too many arguments error
func NewTooManyArgumentsError(command, token string, expected []string) *TooManyArgumentsError {
	var msg string
	switch {
	case len(expected) == 0 && command != "":
		msg = fmt.Sprintf("no arguments expected for %q command, got %q", command, token)
	case len(expected) == 0:
		msg = fmt.Sprintf("no arguments expected, got %q", token)
	case command != "":
		msg = fmt.Sprintf("too many arguments to %q command, expected arguments %q", command, strings.Join(expected, " "))
	default:
		msg = fmt.Sprintf("too many arguments, expected arguments %q", strings.Join(expected, " "))
	}

	return &TooManyArgumentsError{
		baseError: baseError{
			code:    "TOO_MANY_ARGUMENTS",
			message: msg,
		},
		Command:  command,
		Token:    token,
		Expected: expected,
	}
}

// MalformedClusterError is raised when a short-option cluster names an undefined shortcut
type MalformedClusterError struct {
	baseError
	Cluster   string
	Shortcut  string
	Shortcuts []string
}

// NewMalformedClusterError creates a new malformed cluster error
func NewMalformedClusterError(cluster, shortcut string, shortcuts []string) *MalformedClusterError {
	msg := fmt.Sprintf("the \"-%s\" option does not exist in cluster \"-%s\"", shortcut, cluster)
	if len(shortcuts) > 0 {
		msg += fmt.Sprintf(" (valid shortcuts: -%s)", strings.Join(shortcuts, ", -"))
	}

	return &MalformedClusterError{
		baseError: baseError{
			code:    "MALFORMED_CLUSTER",
			message: msg,
		},
		Cluster:   cluster,
		Shortcut:  shortcut,
		Shortcuts: shortcuts,
	}
}

// MissingArgumentsError is raised when required arguments are not bound
type MissingArgumentsError struct {
	baseError
	Missing []string
}

// NewMissingArgumentsError creates a new missing arguments error
func NewMissingArgumentsError(missing []string) *MissingArgumentsError {
	return &MissingArgumentsError{
		baseError: baseError{
			code:    "MISSING_ARGUMENTS",
			message: fmt.Sprintf("not enough arguments (missing: %q)", strings.Join(missing, ", ")),
		},
		Missing: missing,
	}
}

// DefinitionError represents an invalid argument or option declaration
type DefinitionError struct {
	baseError
	Name string
}

// NewDefinitionError creates a new definition error
func NewDefinitionError(name string, message string) *DefinitionError {
	return &DefinitionError{
		baseError: baseError{
			code:    "DEFINITION_ERROR",
			message: message,
		},
		Name: name,
	}
}

// ConfigurationError represents errors in manifest files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}

// CompletionError represents an internal failure while producing candidates.
// Parse errors during completion are not CompletionErrors: they degrade to
// an empty candidate list.
type CompletionError struct {
	baseError
	Command string
}

// NewCompletionError creates a new completion error
func NewCompletionError(command string, message string, cause error) *CompletionError {
	return &CompletionError{
		baseError: baseError{
			code:    "COMPLETION_ERROR",
			message: message,
			cause:   cause,
		},
		Command: command,
	}
}

// IsParseError reports whether err is one of the argv binding failures
func IsParseError(err error) bool {
	var ce ClinputError
	if !errors.As(err, &ce) {
		return false
	}

	switch ce.Code() {
	case "UNKNOWN_OPTION", "MISSING_VALUE", "UNEXPECTED_VALUE", "INVALID_VALUE",
		"UNKNOWN_ARGUMENT", "TOO_MANY_ARGUMENTS", "MALFORMED_CLUSTER", "MISSING_ARGUMENTS":
		return true
	}
	return false
}
