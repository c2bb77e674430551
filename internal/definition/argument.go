package definition

import (
	"fmt"

	"github.com/NikitaCOEUR/clinput/internal/derrors"
)

// ArgumentMode is a bit set describing a positional argument
type ArgumentMode int

const (
	// ArgumentRequired arguments must be bound before a command runs
	ArgumentRequired ArgumentMode = 1 << iota
	// ArgumentOptional arguments fall back to their default
	ArgumentOptional
	// ArgumentIsArray absorbs every remaining positional token
	ArgumentIsArray

	argumentModeMask = ArgumentRequired | ArgumentOptional | ArgumentIsArray
)

// Argument declares a positional argument
type Argument struct {
	meta
	name         string
	mode         ArgumentMode
	defaultValue any
}

// NewArgument declares a positional argument. mode defaults to
// ArgumentOptional. Array arguments take a []string default; scalar ones a
// string default. Required arguments cannot have a default.
func NewArgument(name string, mode ArgumentMode, description string, defaultValue any, attrs ...Attr) (*Argument, error) {
	if name == "" {
		return nil, derrors.NewDefinitionError(name, "an argument name cannot be empty")
	}
	if mode == 0 {
		mode = ArgumentOptional
	}
	if mode&^argumentModeMask != 0 {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("argument mode %d is not valid", mode))
	}
	if mode&ArgumentRequired != 0 && mode&ArgumentOptional != 0 {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("argument %q cannot be both required and optional", name))
	}

	a := &Argument{
		meta: meta{description: description},
		name: name,
		mode: mode,
	}
	for _, attr := range attrs {
		attr(&a.meta)
	}

	if err := a.setDefault(defaultValue); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Argument) setDefault(v any) error {
	if a.IsRequired() && v != nil {
		return derrors.NewDefinitionError(a.name, fmt.Sprintf("cannot set a default value for required argument %q", a.name))
	}

	if a.IsArray() {
		switch d := v.(type) {
		case nil:
			a.defaultValue = []string{}
		case []string:
			a.defaultValue = append([]string(nil), d...)
		default:
			return derrors.NewDefinitionError(a.name, fmt.Sprintf("the default value of array argument %q must be a list", a.name))
		}
		return nil
	}

	switch d := v.(type) {
	case nil:
		a.defaultValue = nil
	case string:
		a.defaultValue = d
	default:
		return derrors.NewDefinitionError(a.name, fmt.Sprintf("the default value of argument %q must be a string", a.name))
	}
	return nil
}

// Name returns the argument name
func (a *Argument) Name() string { return a.name }

// IsRequired reports whether the argument must be bound
func (a *Argument) IsRequired() bool { return a.mode&ArgumentRequired != 0 }

// IsArray reports whether the argument absorbs the remaining tokens
func (a *Argument) IsArray() bool { return a.mode&ArgumentIsArray != 0 }

// Default returns the default value: nil, a string, or a []string copy
func (a *Argument) Default() any {
	if d, ok := a.defaultValue.([]string); ok {
		return append([]string{}, d...)
	}
	return a.defaultValue
}
