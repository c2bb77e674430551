package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/NikitaCOEUR/clinput/internal/token"
)

// ExecPrefix introduces a completion hint naming an external command, as in
// "exec:git branch --format=%(refname:short)".
const ExecPrefix = "exec:"

// Source names reported in Result.Source
const (
	SourceNone        = "none"
	SourceOptions     = "options"
	SourceSuggestions = "suggestions"
)

// valueSource is the completion metadata shared by arguments and options
type valueSource interface {
	Suggestions() []string
	Completion() string
}

// Engine produces candidates for a cursor position. Completers are looked
// up by the hint declared on arguments and options.
type Engine struct {
	completers map[string]Completer
	denyExec   bool
}

// NewEngine creates an engine with the built-in completers registered as
// "files", "dirs" and "executables".
func NewEngine() *Engine {
	return &Engine{
		completers: map[string]Completer{
			"files":       FileCompleter{},
			"dirs":        DirCompleter{},
			"executables": ExecutableCompleter{},
		},
	}
}

// Register adds or replaces the completer for a hint
func (e *Engine) Register(name string, c Completer) {
	e.completers[name] = c
}

// DenyExec makes "exec:" hints complete to nothing instead of running
// their command
func (e *Engine) DenyExec() {
	e.denyExec = true
}

// Completer returns the completer for a hint. "exec:" hints build a
// CommandCompleter on the fly.
func (e *Engine) Completer(hint string) (Completer, error) {
	if c, ok := e.completers[hint]; ok {
		return c, nil
	}
	if command, ok := strings.CutPrefix(hint, ExecPrefix); ok {
		words, err := token.Split(command)
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("completion hint %q names no command", hint)
		}
		if e.denyExec {
			return StaticCompleter{}, nil
		}
		return CommandCompleter{Command: words}, nil
	}
	return nil, fmt.Errorf("unknown completer %q", hint)
}

// Complete returns the candidates for tokens[index]. Tokens before the
// cursor that cannot be bound yield an empty result, not an error: the
// command line is still being typed. Failures of a completer are returned
// as a CompletionError.
func (e *Engine) Complete(ctx context.Context, def *definition.Definition, tokens []string, index int) (*Result, error) {
	in := NewInput(def, tokens, index)
	result := &Result{
		Input:       in,
		Suggestions: []Suggestion{},
		Source:      SourceNone,
	}

	var source valueSource
	switch in.Type {
	case OptionName:
		result.Suggestions = optionNames(in)
		result.Source = SourceOptions
		return result, nil
	case OptionValue:
		o, _ := def.Option(in.Name)
		source = o
	case ArgumentValue:
		a, _ := def.Argument(in.Name)
		source = a
	default:
		return result, nil
	}

	suggestions, name, err := e.values(ctx, in, source)
	if err != nil {
		return nil, derrors.NewCompletionError(def.Name(), fmt.Sprintf("failed to complete %q", in.Name), err)
	}

	for _, s := range Filter(suggestions, in.Value) {
		s.Value = in.Prefix + s.Value
		result.Suggestions = append(result.Suggestions, s)
	}
	result.Source = name
	return result, nil
}

// values returns the declared suggestions of source, else asks its completer
func (e *Engine) values(ctx context.Context, in *Input, source valueSource) ([]Suggestion, string, error) {
	if declared := source.Suggestions(); len(declared) > 0 {
		return Values(declared...), SourceSuggestions, nil
	}

	hint := source.Completion()
	if hint == "" {
		return nil, SourceNone, nil
	}

	c, err := e.Completer(hint)
	if err != nil {
		return nil, hint, err
	}
	suggestions, err := c.Complete(ctx, in)
	if err != nil {
		return nil, hint, err
	}
	return suggestions, hint, nil
}

// optionNames lists the option names not used yet (array options stay
// available), long names in lexical order followed by shortcuts.
func optionNames(in *Input) []Suggestion {
	def := in.Bound.Definition()
	used := func(o *definition.Option) bool {
		return in.Bound.IsOptionSet(o.Name()) && !o.IsArray()
	}

	namePrefix := ""
	if strings.HasPrefix(in.Value, "--") {
		namePrefix = in.Value[2:]
	}

	var suggestions []Suggestion
	for _, ln := range def.LongNamesWithPrefix(namePrefix) {
		if used(ln.Option) {
			continue
		}
		description := ln.Option.Description()
		if ln.Negated {
			description = "Negate the \"--" + ln.Option.Name() + "\" option"
		}
		suggestions = append(suggestions, Suggestion{Value: "--" + ln.Name, Description: description})
	}

	if !strings.HasPrefix(in.Value, "--") {
		for _, o := range def.Options() {
			if o.Shortcut() == "" || used(o) {
				continue
			}
			suggestions = append(suggestions, Suggestion{Value: "-" + o.Shortcut(), Description: o.Description()})
		}
	}

	return Filter(suggestions, in.Value)
}

// Filter keeps the suggestions whose value starts with prefix
func Filter(suggestions []Suggestion, prefix string) []Suggestion {
	filtered := []Suggestion{}
	for _, s := range suggestions {
		if strings.HasPrefix(s.Value, prefix) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
