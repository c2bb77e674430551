// Package completion answers shell completion requests against a definition.
package completion

import "context"

// Suggestion represents a single completion suggestion
type Suggestion struct {
	Value       string // The actual value to complete
	Description string // Optional description/help text
}

// Completer provides dynamic candidates for an option or argument value
type Completer interface {
	// Complete returns candidates for in.Value. Candidates need not be
	// prefix filtered; the engine filters them.
	Complete(ctx context.Context, in *Input) ([]Suggestion, error)
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, in *Input) ([]Suggestion, error)

// Complete calls f
func (f CompleterFunc) Complete(ctx context.Context, in *Input) ([]Suggestion, error) {
	return f(ctx, in)
}

// StaticCompleter always returns the same candidates
type StaticCompleter []Suggestion

// Complete returns the static candidates
func (s StaticCompleter) Complete(_ context.Context, _ *Input) ([]Suggestion, error) {
	return append([]Suggestion(nil), s...), nil
}

// Values builds a StaticCompleter without descriptions
func Values(values ...string) StaticCompleter {
	out := make(StaticCompleter, 0, len(values))
	for _, v := range values {
		out = append(out, Suggestion{Value: v})
	}
	return out
}

// Result represents the result of a completion request
type Result struct {
	Input       *Input
	Suggestions []Suggestion
	Source      string // Which completer provided these suggestions
}
