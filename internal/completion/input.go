package completion

import (
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/input"
	"github.com/NikitaCOEUR/clinput/internal/token"
)

// Type is what the token under the cursor is expected to be
type Type int

const (
	// None means nothing can be offered
	None Type = iota
	// ArgumentValue completes a positional argument
	ArgumentValue
	// OptionName completes "--name" or "-x"
	OptionName
	// OptionValue completes the value of an option
	OptionValue
)

// String returns the type name
func (t Type) String() string {
	switch t {
	case ArgumentValue:
		return "argument_value"
	case OptionName:
		return "option_name"
	case OptionValue:
		return "option_value"
	default:
		return "none"
	}
}

// Input describes the cursor position of a completion request
type Input struct {
	Tokens       []string
	CurrentIndex int
	Type         Type
	// Name is the option or argument being completed
	Name string
	// Value is the part of the current token being completed
	Value string
	// Prefix is the part of the current token kept verbatim in front of
	// every candidate, such as "--out=" or "-o"
	Prefix string
	// Bound holds the bindings of the tokens before the cursor
	Bound *input.Input
	// Err is the parse error that made completion give up, if any
	Err error
}

// NewInput classifies the cursor position. index is the 0-based position
// of the token being completed; it may equal len(tokens) for a fresh word.
// The tokens before the cursor are bound with the same parser as execution
// so both agree on how each token is read.
func NewInput(def *definition.Definition, tokens []string, index int) *Input {
	index = max(0, min(index, len(tokens)))

	in := &Input{
		Tokens:       append([]string(nil), tokens...),
		CurrentIndex: index,
	}
	current := in.CurrentToken()

	bound, err := input.ParseArgv(def, tokens[:index], input.Partial())
	if err != nil {
		in.Err = err
		return in
	}
	in.Bound = bound

	// An optional value is never taken from an option-like token, so the
	// cursor then starts a new option.
	if pending := bound.Pending(); pending != "" && !optionalBeforeOption(def, pending, current) {
		in.Type = OptionValue
		in.Name = pending
		in.Value = current
		return in
	}

	if !bound.Terminated() && strings.HasPrefix(current, "-") {
		in.classifyOption(def, current)
		return in
	}

	if a, ok := bound.NextArgument(); ok {
		in.Type = ArgumentValue
		in.Name = a.Name()
		in.Value = current
	}
	return in
}

func optionalBeforeOption(def *definition.Definition, pending, current string) bool {
	o, ok := def.Option(pending)
	return ok && !o.IsValueRequired() && token.LooksLikeOption(current)
}

func (in *Input) classifyOption(def *definition.Definition, current string) {
	in.Type = OptionName
	in.Value = current

	tok := token.Classify(current)
	switch {
	case tok.Kind == token.LongOption && tok.HasValue:
		o, ok := def.Option(tok.Name)
		if !ok || !o.AcceptValue() {
			in.Type = None
			return
		}
		in.Type = OptionValue
		in.Name = o.Name()
		in.Prefix = "--" + tok.Name + "="
		in.Value = tok.Value
	case tok.Kind == token.ShortOption && len(tok.Name) > 1:
		o, ok := def.OptionForShortcut(tok.Name[:1])
		if !ok || !o.AcceptValue() {
			return
		}
		in.Type = OptionValue
		in.Name = o.Name()
		in.Prefix = "-" + tok.Name[:1]
		in.Value = tok.Name[1:]
	}
}

// CurrentToken returns the token under the cursor, or "" past the end
func (in *Input) CurrentToken() string {
	if in.CurrentIndex < len(in.Tokens) {
		return in.Tokens[in.CurrentIndex]
	}
	return ""
}
