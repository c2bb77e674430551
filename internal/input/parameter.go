package input

import (
	"strings"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/token"
)

// FirstArgument returns the first positional token, typically a command
// name following global options.
//
// This is a heuristic. An option token written without "=" and followed by
// another token is assumed to take that token as its value when the option
// accepts one: for clusters, only the first value-accepting shortcut is
// considered, and only when it ends the cluster. Optional-value options are
// assumed to take the next token unless it looks like an option. Unknown
// options are assumed to take no value.
func FirstArgument(def *definition.Definition, tokens []string) (string, bool) {
	skip := false
	for i, raw := range tokens {
		if skip {
			skip = false
			continue
		}

		tok := token.Classify(raw)
		switch tok.Kind {
		case token.Terminator:
			if i+1 < len(tokens) {
				return tokens[i+1], true
			}
			return "", false
		case token.Positional:
			return raw, true
		}

		if tok.HasValue || i+1 >= len(tokens) {
			continue
		}
		o := optionTakingNext(def, tok)
		if o == nil {
			continue
		}
		if o.IsValueRequired() || !token.LooksLikeOption(tokens[i+1]) {
			skip = true
		}
	}
	return "", false
}

// optionTakingNext returns the option that would read the following token
// as its value, or nil.
func optionTakingNext(def *definition.Definition, tok token.Token) *definition.Option {
	if tok.Kind == token.LongOption {
		if o, ok := def.Option(tok.Name); ok && o.AcceptValue() {
			return o
		}
		return nil
	}

	for i := 0; i < len(tok.Name); i++ {
		o, ok := def.OptionForShortcut(tok.Name[i : i+1])
		if !ok {
			return nil
		}
		if o.AcceptValue() {
			if i == len(tok.Name)-1 {
				return o
			}
			return nil
		}
	}
	return nil
}

// HasParameterOption reports whether any raw token matches one of values
// ("--name", "-x"), including the "--name=value" and "-xvalue" forms.
// With onlyParams, tokens after "--" are ignored. No definition is needed,
// so this works before the command is known.
func HasParameterOption(tokens []string, values []string, onlyParams bool) bool {
	for _, t := range tokens {
		if onlyParams && t == "--" {
			return false
		}
		for _, v := range values {
			if t == v {
				return true
			}
			if leading := parameterLeading(v); leading != "" && strings.HasPrefix(t, leading) {
				return true
			}
		}
	}
	return false
}

// ParameterOption returns the raw value of the first token matching one of
// values, or def. A match at the end of the tokens with no value also
// returns def.
func ParameterOption(tokens []string, values []string, def string, onlyParams bool) string {
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if onlyParams && t == "--" {
			return def
		}
		for _, v := range values {
			if t == v {
				if i+1 < len(tokens) {
					return tokens[i+1]
				}
				return def
			}
			if leading := parameterLeading(v); leading != "" && strings.HasPrefix(t, leading) {
				return t[len(leading):]
			}
		}
	}
	return def
}

func parameterLeading(value string) string {
	if strings.HasPrefix(value, "--") {
		return value + "="
	}
	return value
}
