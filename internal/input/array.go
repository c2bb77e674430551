package input

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
)

// ParseArray binds programmatic parameters to def. Keys are "--name" or
// "-x" for options, an argument name, or a 0-based argument position.
//
// Option values are nil (flag given without a value), bool, string or
// []string; argument values are string or []string. The unknown-option,
// negation and required-value rules are the same as ParseArgv's.
func ParseArray(def *definition.Definition, params map[string]any) (*Input, error) {
	in := newInput(def, nil)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := params[key]

		var err error
		switch {
		case key == "--":
			in.terminated = true
		case strings.HasPrefix(key, "--"):
			err = addArrayLongOption(in, key[2:], value)
		case strings.HasPrefix(key, "-") && len(key) > 1:
			err = addArrayShortOption(in, key[1:], value)
		default:
			err = addArrayArgument(in, key, value)
		}
		if err != nil {
			return nil, err
		}
	}

	return in, nil
}

func addArrayShortOption(in *Input, shortcut string, value any) error {
	name, ok := in.def.ShortcutToName(shortcut)
	if !ok {
		return derrors.NewUnknownOptionError(shortcut, true, "", in.def.ValidOptions())
	}
	return addArrayLongOption(in, name, value)
}

func addArrayLongOption(in *Input, name string, value any) error {
	o, ok := in.def.Option(name)
	if !ok {
		target, negated := in.def.NegationToName(name)
		if !negated {
			return derrors.NewUnknownOptionError(name, false, in.def.SuggestOption(name), in.def.ValidOptions())
		}
		switch v := value.(type) {
		case nil:
			in.options[target] = false
		case bool:
			in.options[target] = !v
		default:
			return derrors.NewUnexpectedValueError(name)
		}
		return nil
	}

	if !o.AcceptValue() {
		switch v := value.(type) {
		case nil:
			in.options[name] = true
		case bool:
			in.options[name] = v
		default:
			return derrors.NewUnexpectedValueError(name)
		}
		return nil
	}

	switch v := value.(type) {
	case nil:
		if o.IsValueRequired() {
			return derrors.NewMissingValueError(name)
		}
		in.options[name] = o.Default()
	case string:
		if o.IsArray() {
			in.options[name] = []string{v}
		} else {
			in.options[name] = v
		}
	case []string:
		if !o.IsArray() {
			return derrors.NewInvalidValueError(name, fmt.Sprintf("the \"--%s\" option takes a single value", name))
		}
		if len(v) == 0 && o.IsValueRequired() {
			return derrors.NewMissingValueError(name)
		}
		in.options[name] = append([]string{}, v...)
	default:
		return derrors.NewInvalidValueError(name, fmt.Sprintf("the \"--%s\" option expects a string, got %T", name, value))
	}
	return nil
}

func addArrayArgument(in *Input, key string, value any) error {
	var a *definition.Argument
	if pos, err := strconv.Atoi(key); err == nil {
		found, ok := in.def.ArgumentAt(pos)
		if !ok {
			names := make([]string, 0)
			for _, arg := range in.def.Arguments() {
				names = append(names, arg.Name())
			}
			return derrors.NewTooManyArgumentsError(in.def.Name(), fmt.Sprint(value), names)
		}
		a = found
	} else {
		found, ok := in.def.Argument(key)
		if !ok {
			return derrors.NewUnknownArgumentError(key)
		}
		a = found
	}

	switch v := value.(type) {
	case string:
		if a.IsArray() {
			in.arguments[a.Name()] = []string{v}
		} else {
			in.arguments[a.Name()] = v
		}
	case []string:
		if !a.IsArray() {
			return derrors.NewInvalidValueError(a.Name(), fmt.Sprintf("the %q argument takes a single value", a.Name()))
		}
		in.arguments[a.Name()] = append([]string{}, v...)
	default:
		return derrors.NewInvalidValueError(a.Name(), fmt.Sprintf("the %q argument expects a string, got %T", a.Name(), value))
	}
	return nil
}
