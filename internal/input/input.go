// Package input binds command-line tokens, or programmatic key-value
// parameters, to a definition.
//
// An Input is created fresh for every invocation and owns its bindings; the
// definition it references is shared and read-only.
package input

import (
	"sort"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/NikitaCOEUR/clinput/internal/token"
)

// Input is the result of binding tokens to a definition
type Input struct {
	def *definition.Definition

	// arguments holds string or []string values
	arguments map[string]any
	// options holds bool, string, nil or []string values
	options map[string]any

	terminated bool
	pending    string
	tokens     []string
}

func newInput(def *definition.Definition, tokens []string) *Input {
	return &Input{
		def:       def,
		arguments: make(map[string]any),
		options:   make(map[string]any),
		tokens:    append([]string(nil), tokens...),
	}
}

// Definition returns the definition the input was bound against
func (in *Input) Definition() *definition.Definition { return in.def }

// Tokens returns the tokens the input was parsed from. It is empty for
// inputs built from parameters.
func (in *Input) Tokens() []string { return append([]string(nil), in.tokens...) }

// Terminated reports whether a "--" ended option parsing
func (in *Input) Terminated() bool { return in.terminated }

// Pending returns the option left waiting for its value at the end of a
// partial parse, or "".
func (in *Input) Pending() string { return in.pending }

// Argument returns the bound value of a declared argument, or its default.
// ok is false when the argument is not declared.
func (in *Input) Argument(name string) (any, bool) {
	a, ok := in.def.Argument(name)
	if !ok {
		return nil, false
	}
	if v, set := in.arguments[name]; set {
		return copyValue(v), true
	}
	return a.Default(), true
}

// Option returns the bound value of a declared option, or its default.
// ok is false when the option is not declared.
func (in *Input) Option(name string) (any, bool) {
	o, ok := in.def.Option(name)
	if !ok {
		return nil, false
	}
	if v, set := in.options[name]; set {
		return copyValue(v), true
	}
	return o.Default(), true
}

// Arguments returns every argument, bound values merged over defaults
func (in *Input) Arguments() map[string]any {
	out := in.def.ArgumentDefaults()
	for k, v := range in.arguments {
		out[k] = copyValue(v)
	}
	return out
}

// Options returns every option, bound values merged over defaults
func (in *Input) Options() map[string]any {
	out := in.def.OptionDefaults()
	for k, v := range in.options {
		out[k] = copyValue(v)
	}
	return out
}

// IsArgumentSet reports whether the argument was given explicitly
func (in *Input) IsArgumentSet(name string) bool {
	_, ok := in.arguments[name]
	return ok
}

// IsOptionSet reports whether the option was given explicitly
func (in *Input) IsOptionSet(name string) bool {
	_, ok := in.options[name]
	return ok
}

// StringArgument returns a scalar argument, or "" when unset or not a string
func (in *Input) StringArgument(name string) string {
	v, _ := in.Argument(name)
	s, _ := v.(string)
	return s
}

// StringsArgument returns an array argument
func (in *Input) StringsArgument(name string) []string {
	v, _ := in.Argument(name)
	s, _ := v.([]string)
	return s
}

// StringOption returns a scalar option value, or ""
func (in *Input) StringOption(name string) string {
	v, _ := in.Option(name)
	s, _ := v.(string)
	return s
}

// BoolOption returns a boolean option value
func (in *Input) BoolOption(name string) bool {
	v, _ := in.Option(name)
	b, _ := v.(bool)
	return b
}

// StringsOption returns an array option value
func (in *Input) StringsOption(name string) []string {
	v, _ := in.Option(name)
	s, _ := v.([]string)
	return s
}

// BoundArguments returns the number of positional slots filled so far
func (in *Input) BoundArguments() int { return len(in.arguments) }

// NextArgument returns the argument the next positional token would bind
// to: the first unfilled slot, or the trailing array argument.
func (in *Input) NextArgument() (*definition.Argument, bool) {
	n := len(in.arguments)
	if a, ok := in.def.ArgumentAt(n); ok {
		return a, true
	}
	if a, ok := in.def.ArgumentAt(n - 1); ok && a.IsArray() {
		return a, true
	}
	return nil, false
}

// Validate checks that every required argument is bound
func (in *Input) Validate() error {
	var missing []string
	for _, a := range in.def.Arguments() {
		if !a.IsRequired() {
			continue
		}
		if _, ok := in.arguments[a.Name()]; !ok {
			missing = append(missing, a.Name())
		}
	}
	if len(missing) > 0 {
		return derrors.NewMissingArgumentsError(missing)
	}
	return nil
}

// Args renders the bindings back into tokens that parse to the same
// options and arguments. Options come first, in declaration order, using
// the "--name=value" form; arguments follow, preceded by "--" when one of
// them would otherwise read as an option or be taken as the value of a
// bare optional-value flag.
//
// Positions are the only way to address arguments on a command line, so an
// unset argument before the last set one is rendered as its default, or ""
// without one. Such an argument reads as set once the result is parsed.
func (in *Input) Args() []string {
	var out []string
	bare := false

	for _, o := range in.def.Options() {
		v, set := in.options[o.Name()]
		if !set {
			continue
		}
		flag := "--" + o.Name()

		switch value := v.(type) {
		case bool:
			if value {
				out = append(out, flag)
			} else if in.def.HasNegation(definition.NegationPrefix + o.Name()) {
				out = append(out, "--"+definition.NegationPrefix+o.Name())
			}
		case string:
			out = append(out, flag+"="+value)
		case []string:
			if len(value) == 0 {
				out = append(out, flag)
				bare = true
			}
			for _, item := range value {
				out = append(out, flag+"="+item)
			}
		case nil:
			out = append(out, flag)
			bare = true
		}
	}

	var positional []string
	last := -1
	for i, a := range in.def.Arguments() {
		if _, set := in.arguments[a.Name()]; set {
			last = i
		}
	}
	for i, a := range in.def.Arguments() {
		if i > last {
			break
		}
		v, set := in.arguments[a.Name()]
		if !set {
			v = a.Default()
		}
		switch value := v.(type) {
		case string:
			positional = append(positional, value)
		case []string:
			positional = append(positional, value...)
		default:
			positional = append(positional, "")
		}
	}

	separate := bare && len(positional) > 0
	for _, p := range positional {
		if token.LooksLikeOption(p) {
			separate = true
			break
		}
	}
	if separate {
		out = append(out, "--")
	}

	return append(out, positional...)
}

// String returns Args as a shell-quoted command line
func (in *Input) String() string {
	return token.Join(in.Args()...)
}

// SetOptionNames returns the names of explicitly set options, sorted
func (in *Input) SetOptionNames() []string {
	names := make([]string, 0, len(in.options))
	for k := range in.options {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func copyValue(v any) any {
	if s, ok := v.([]string); ok {
		return append([]string{}, s...)
	}
	return v
}
