// Package token classifies command-line tokens and provides the pending-token
// queue consumed by the input parsers.
package token

import "strings"

// Kind is the syntactic class of a raw command-line token
type Kind int

const (
	// Positional is an argument value, including the "-" stdin marker
	Positional Kind = iota
	// LongOption is "--name" or "--name=value"
	LongOption
	// ShortOption is "-x", "-xvalue" or a cluster such as "-xvf"
	ShortOption
	// Terminator is "--": every later token is positional
	Terminator
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case LongOption:
		return "long-option"
	case ShortOption:
		return "short-option"
	case Terminator:
		return "terminator"
	default:
		return "unknown"
	}
}

// Token is a classified command-line token
type Token struct {
	Raw  string
	Kind Kind
	// Name is the long option name, or the short cluster without its dash
	Name string
	// Value is the part after "=" of a long option
	Value string
	// HasValue reports whether a long option carried "="
	HasValue bool
}

// Classify returns the kind of raw. It does not know whether option parsing
// has been terminated; callers treat everything as Positional after a
// Terminator.
func Classify(raw string) Token {
	switch {
	case raw == "" || raw == "-":
		return Token{Raw: raw, Kind: Positional}
	case raw == "--":
		return Token{Raw: raw, Kind: Terminator}
	case strings.HasPrefix(raw, "--"):
		name := raw[2:]
		if i := strings.IndexByte(name, '='); i >= 0 {
			return Token{Raw: raw, Kind: LongOption, Name: name[:i], Value: name[i+1:], HasValue: true}
		}
		return Token{Raw: raw, Kind: LongOption, Name: name}
	case raw[0] == '-':
		return Token{Raw: raw, Kind: ShortOption, Name: raw[1:]}
	default:
		return Token{Raw: raw, Kind: Positional}
	}
}

// LooksLikeOption reports whether raw would be read as an option rather
// than as a value: a leading dash, except for the lone "-".
func LooksLikeOption(raw string) bool {
	k := Classify(raw).Kind
	return k == LongOption || k == ShortOption || k == Terminator
}
