package definition

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/derrors"
)

// ValueMode is a bit set describing how an option takes its value
type ValueMode int

const (
	// ValueNone options are boolean switches; they are negatable as --no-name
	ValueNone ValueMode = 1 << iota
	// ValueRequired options fail when no value follows them
	ValueRequired
	// ValueOptional options fall back to their default when no value follows
	ValueOptional
	// ValueIsArray options accumulate one value per occurrence
	ValueIsArray

	valueModeMask = ValueNone | ValueRequired | ValueOptional | ValueIsArray
)

// NegationPrefix is prepended to a boolean option name to bind it to false
const NegationPrefix = "no-"

// Option declares a named option
type Option struct {
	meta
	name         string
	shortcut     string
	mode         ValueMode
	defaultValue any
}

// NewOption declares an option. Leading dashes are stripped from name and
// shortcut. mode defaults to ValueNone. Boolean options default to false,
// array options to an empty list.
func NewOption(name, shortcut string, mode ValueMode, description string, defaultValue any, attrs ...Attr) (*Option, error) {
	name = strings.TrimPrefix(name, "--")
	if name == "" {
		return nil, derrors.NewDefinitionError(name, "an option name cannot be empty")
	}
	if strings.ContainsAny(name, "= \t") {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("option name %q contains invalid characters", name))
	}

	shortcut = strings.TrimLeft(shortcut, "-")
	if len(shortcut) > 1 {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("option %q: a shortcut must be a single character, got %q", name, shortcut))
	}
	if shortcut == "=" {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("option %q: %q is not a valid shortcut", name, shortcut))
	}

	if mode == 0 {
		mode = ValueNone
	}
	if mode&^valueModeMask != 0 {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("option mode %d is not valid", mode))
	}

	kinds := 0
	for _, m := range []ValueMode{ValueNone, ValueRequired, ValueOptional} {
		if mode&m != 0 {
			kinds++
		}
	}
	if kinds > 1 {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("option %q mixes incompatible value modes", name))
	}
	if mode&ValueIsArray != 0 && mode&(ValueRequired|ValueOptional) == 0 {
		return nil, derrors.NewDefinitionError(name, fmt.Sprintf("option %q: an array option must accept a value", name))
	}

	o := &Option{
		meta:     meta{description: description},
		name:     name,
		shortcut: shortcut,
		mode:     mode,
	}
	for _, attr := range attrs {
		attr(&o.meta)
	}

	if err := o.setDefault(defaultValue); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Option) setDefault(v any) error {
	switch {
	case !o.AcceptValue():
		if v != nil && v != false {
			return derrors.NewDefinitionError(o.name, fmt.Sprintf("cannot set a default value for option %q which takes no value", o.name))
		}
		o.defaultValue = false
	case o.IsArray():
		switch d := v.(type) {
		case nil:
			o.defaultValue = []string{}
		case []string:
			o.defaultValue = append([]string(nil), d...)
		default:
			return derrors.NewDefinitionError(o.name, fmt.Sprintf("the default value of array option %q must be a list", o.name))
		}
	default:
		switch d := v.(type) {
		case nil:
			o.defaultValue = nil
		case string:
			o.defaultValue = d
		default:
			return derrors.NewDefinitionError(o.name, fmt.Sprintf("the default value of option %q must be a string", o.name))
		}
	}
	return nil
}

// Name returns the long option name
func (o *Option) Name() string { return o.name }

// Shortcut returns the single-character alias, or ""
func (o *Option) Shortcut() string { return o.shortcut }

// AcceptValue reports whether the option takes a value
func (o *Option) AcceptValue() bool { return o.IsValueRequired() || o.IsValueOptional() }

// IsValueRequired reports whether a value must follow the option
func (o *Option) IsValueRequired() bool { return o.mode&ValueRequired != 0 }

// IsValueOptional reports whether the value may be omitted
func (o *Option) IsValueOptional() bool { return o.mode&ValueOptional != 0 }

// IsArray reports whether repeated occurrences accumulate
func (o *Option) IsArray() bool { return o.mode&ValueIsArray != 0 }

// IsNegatable reports whether --no-name binds the option to false
func (o *Option) IsNegatable() bool { return !o.AcceptValue() }

// Default returns the default value: false, nil, a string, or a []string copy
func (o *Option) Default() any {
	if d, ok := o.defaultValue.([]string); ok {
		return append([]string{}, d...)
	}
	return o.defaultValue
}

// Equals reports whether two declarations are interchangeable
func (o *Option) Equals(other *Option) bool {
	return o.name == other.name &&
		o.shortcut == other.shortcut &&
		o.mode == other.mode &&
		fmt.Sprint(o.defaultValue) == fmt.Sprint(other.defaultValue)
}
